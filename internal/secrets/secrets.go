// Package secrets contains utilities for accessing secrets from Secret Manager.
package secrets

import (
	"context"
	"fmt"
	"hash/crc32"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Version accesses the Secret Manager SecretVersion with the given resource
// name and returns the data payload. The payload checksum is verified before
// it is returned.
func Version(ctx context.Context, client *secretmanager.Client, name string) (string, error) {
	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version %s: %v", name, err)
	}
	crc32c := crc32.MakeTable(crc32.Castagnoli)
	checksum := int64(crc32.Checksum(res.Payload.Data, crc32c))
	if res.Payload.DataCrc32C != nil && checksum != *res.Payload.DataCrc32C {
		return "", fmt.Errorf("data corruption detected with secret version %s", name)
	}
	return string(res.Payload.Data), nil
}

// LatestVersionName returns the resource name of the latest version of the
// named secret in the given project.
func LatestVersionName(projectID, secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretID)
}
