// Package gcsx provides small helpers for moving sample inputs and outputs
// through Cloud Storage.
package gcsx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// ObjectURI is the parsed form of a gs:// URI.
type ObjectURI struct {
	// Bucket the object is in.
	Bucket string
	// Name of the object.
	Name string
}

// String formats the URI back into gs:// form.
func (o ObjectURI) String() string {
	return fmt.Sprintf("gs://%s/%s", o.Bucket, o.Name)
}

// ParseURI parses a gs:// URI into its bucket and object name.
func ParseURI(uri string) (ObjectURI, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return ObjectURI{}, fmt.Errorf("cannot parse URI %q: %w", uri, err)
	}
	if u.Scheme != "gs" {
		return ObjectURI{}, fmt.Errorf("URI scheme is %q, must be 'gs'", u.Scheme)
	}
	if u.Host == "" {
		return ObjectURI{}, errors.New("bucket name is empty")
	}
	obj := ObjectURI{Bucket: u.Host, Name: strings.TrimLeft(u.Path, "/")}
	if obj.Name == "" {
		return ObjectURI{}, errors.New("object name is empty")
	}
	return obj, nil
}

// UploadContent points to the source of the content to upload, either a byte
// slice or a local file path.
type UploadContent struct {
	Data      []byte
	LocalPath string
}

// Upload writes the provided content to the named object.
func Upload(ctx context.Context, client *storage.Client, bucket, object string, content *UploadContent) error {
	var data []byte
	switch {
	case len(content.Data) != 0 && len(content.LocalPath) != 0:
		return fmt.Errorf("unable to determine the content to upload, both data and a local path were provided")
	case len(content.Data) != 0:
		data = content.Data
	case len(content.LocalPath) != 0:
		var err error
		data, err = os.ReadFile(content.LocalPath)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unable to determine the content to upload")
	}

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}

// Download reads the named object and returns its content.
func Download(ctx context.Context, client *storage.Client, bucket, object string) ([]byte, error) {
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", bucket, object, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}
