// Copyright 2024 Google LLC

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     https://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package texttospeech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/GoogleCloudPlatform/go-docs-samples/internal/testutil"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

func TestTextToSSML(t *testing.T) {
	want := "<speak>123 Street Ln, Small Town, IL 12345-1234\n" +
		"<break time=\"2s\"/>1 Jenny St &amp; Number St, Tutone City, CA 86753\n" +
		"<break time=\"2s\"/>1 Piazza del Fibonacci, 12358 Pisa, Italy\n" +
		"<break time=\"2s\"/></speak>"

	got, err := textToSSML(filepath.Join("testdata", "example.txt"))
	if err != nil {
		t.Fatalf("textToSSML: %v", err)
	}
	if got != want {
		t.Errorf("textToSSML =\n%s\nwant\n%s", got, want)
	}
}

func TestTextToSSMLMissingFile(t *testing.T) {
	if _, err := textToSSML(filepath.Join("testdata", "no-such-file.txt")); err == nil {
		t.Error("textToSSML with a missing file succeeded, want error")
	}
}

func TestSSMLToAudioEmptyInput(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "empty.mp3")

	var buf bytes.Buffer
	if err := ssmlToAudio(context.Background(), &buf, "", outFile); err != nil {
		t.Fatalf("ssmlToAudio: %v", err)
	}
	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Errorf("ssmlToAudio with empty SSML wrote %s, want no file", outFile)
	}
}

func TestSSMLToAudio(t *testing.T) {
	testutil.SystemTest(t)
	ctx := context.Background()

	ssml, err := textToSSML(filepath.Join("testdata", "example.txt"))
	if err != nil {
		t.Fatalf("textToSSML: %v", err)
	}
	outFile := filepath.Join(t.TempDir(), "example.mp3")

	var buf bytes.Buffer
	if err := ssmlToAudio(ctx, &buf, ssml, outFile); err != nil {
		t.Fatalf("ssmlToAudio: %v", err)
	}
	info, err := os.Stat(outFile)
	if err != nil {
		t.Fatalf("stat output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("ssmlToAudio wrote an empty file")
	}
	if got := buf.String(); !strings.Contains(got, outFile) {
		t.Errorf("ssmlToAudio output %q, want it to name %s", got, outFile)
	}
}

func TestSynthesizeLongAudio(t *testing.T) {
	projectID := testutil.SystemTest(t)
	projectNumber := testutil.ProjectNumber(t)
	ctx := context.Background()

	client, err := storage.NewClient(ctx)
	if err != nil {
		t.Fatalf("storage.NewClient: %v", err)
	}
	defer client.Close()

	bucketName := "long-audio-test-" + uuid.NewString()
	bucket := client.Bucket(bucketName)
	if err := bucket.Create(ctx, projectID, nil); err != nil {
		t.Fatalf("Bucket.Create: %v", err)
	}
	defer func() {
		it := bucket.Objects(ctx, nil)
		for {
			attrs, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				t.Errorf("Objects.Next: %v", err)
				break
			}
			if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
				t.Errorf("Object.Delete(%s): %v", attrs.Name, err)
			}
		}
		if err := bucket.Delete(ctx); err != nil {
			t.Errorf("Bucket.Delete: %v", err)
		}
	}()

	outputURI := fmt.Sprintf("gs://%s/fake_file.wav", bucketName)
	var buf bytes.Buffer
	err = synthesizeLongAudio(ctx, &buf, projectNumber, "us-central1",
		"Hello there. How are you today? It's such nice weather outside.", outputURI)
	if err != nil {
		t.Fatalf("synthesizeLongAudio: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "Finished processing") {
		t.Errorf("synthesizeLongAudio output %q, want completion message", got)
	}
}
