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

package containeranalysis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/GoogleCloudPlatform/go-docs-samples/internal/testutil"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	listRetries   = 10
	listInterval  = 5 * time.Second
	testImageBase = "https://gcr.io/my-project/my-image"
)

// newTestNote creates a note for a single test and registers its cleanup.
func newTestNote(ctx context.Context, t *testing.T, projectID string) string {
	t.Helper()
	noteID := "note-" + uuid.NewString()
	if _, err := createNote(ctx, noteID, projectID); err != nil {
		t.Fatalf("createNote: %v", err)
	}
	t.Cleanup(func() {
		if err := deleteNote(ctx, noteID, projectID); err != nil {
			if status.Code(err) != codes.NotFound {
				t.Errorf("deleteNote: %v", err)
			}
		}
	})
	return noteID
}

func TestCreateAndGetNote(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	noteID := newTestNote(ctx, t, projectID)

	note, err := getNote(ctx, noteID, projectID)
	if err != nil {
		t.Fatalf("getNote: %v", err)
	}
	want := fmt.Sprintf("projects/%s/notes/%s", projectID, noteID)
	if note.Name != want {
		t.Errorf("note.Name = %q, want %q", note.Name, want)
	}
}

func TestUpdateNote(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	noteID := newTestNote(ctx, t, projectID)

	note, err := getNote(ctx, noteID, projectID)
	if err != nil {
		t.Fatalf("getNote: %v", err)
	}
	note.ShortDescription = "An updated vulnerability description"
	if _, err := updateNote(ctx, note, noteID, projectID); err != nil {
		t.Fatalf("updateNote: %v", err)
	}

	updated, err := getNote(ctx, noteID, projectID)
	if err != nil {
		t.Fatalf("getNote after update: %v", err)
	}
	if updated.ShortDescription != note.ShortDescription {
		t.Errorf("ShortDescription = %q, want %q", updated.ShortDescription, note.ShortDescription)
	}
}

func TestDeleteNote(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	noteID := newTestNote(ctx, t, projectID)

	if err := deleteNote(ctx, noteID, projectID); err != nil {
		t.Fatalf("deleteNote: %v", err)
	}
	if _, err := getNote(ctx, noteID, projectID); status.Code(err) != codes.NotFound {
		t.Errorf("getNote after delete returned %v, want NotFound", err)
	}
}

func TestOccurrenceLifecycle(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	noteID := newTestNote(ctx, t, projectID)
	imageURL := fmt.Sprintf("%s-%s", testImageBase, uuid.NewString())

	created, err := createOccurrence(ctx, imageURL, noteID, projectID, projectID)
	if err != nil {
		t.Fatalf("createOccurrence: %v", err)
	}

	got, err := getOccurrence(ctx, created.Name)
	if err != nil {
		t.Fatalf("getOccurrence: %v", err)
	}
	if got.ResourceUri != imageURL {
		t.Errorf("ResourceUri = %q, want %q", got.ResourceUri, imageURL)
	}

	got.Details = created.Details
	if _, err := updateOccurrence(ctx, got, created.Name); err != nil {
		t.Fatalf("updateOccurrence: %v", err)
	}

	if err := deleteOccurrence(ctx, created.Name); err != nil {
		t.Fatalf("deleteOccurrence: %v", err)
	}
	if _, err := getOccurrence(ctx, created.Name); status.Code(err) != codes.NotFound {
		t.Errorf("getOccurrence after delete returned %v, want NotFound", err)
	}
}

func TestOccurrencesForImage(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	noteID := newTestNote(ctx, t, projectID)
	imageURL := fmt.Sprintf("%s-%s", testImageBase, uuid.NewString())

	occ, err := createOccurrence(ctx, imageURL, noteID, projectID, projectID)
	if err != nil {
		t.Fatalf("createOccurrence: %v", err)
	}
	defer func() {
		if err := deleteOccurrence(ctx, occ.Name); err != nil {
			t.Errorf("deleteOccurrence: %v", err)
		}
	}()

	// Listing lags creation; retry until the occurrence shows up.
	err = testutil.Retry(ctx, listRetries, listInterval, func() error {
		count, err := occurrencesForImage(ctx, imageURL, projectID)
		if err != nil {
			return err
		}
		if count != 1 {
			return fmt.Errorf("occurrencesForImage = %d, want 1", count)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("occurrencesForImage never converged: %v", err)
	}
}

func TestOccurrencesForNote(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	noteID := newTestNote(ctx, t, projectID)
	imageURL := fmt.Sprintf("%s-%s", testImageBase, uuid.NewString())

	occ, err := createOccurrence(ctx, imageURL, noteID, projectID, projectID)
	if err != nil {
		t.Fatalf("createOccurrence: %v", err)
	}
	defer func() {
		if err := deleteOccurrence(ctx, occ.Name); err != nil {
			t.Errorf("deleteOccurrence: %v", err)
		}
	}()

	err = testutil.Retry(ctx, listRetries, listInterval, func() error {
		count, err := occurrencesForNote(ctx, noteID, projectID)
		if err != nil {
			return err
		}
		if count != 1 {
			return fmt.Errorf("occurrencesForNote = %d, want 1", count)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("occurrencesForNote never converged: %v", err)
	}
}

func TestOccurrencePubsub(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	noteID := newTestNote(ctx, t, projectID)
	subscriptionID := "occurrence-sub-" + uuid.NewString()

	if err := createOccurrenceSubscription(ctx, subscriptionID, projectID); err != nil {
		t.Fatalf("createOccurrenceSubscription: %v", err)
	}
	defer func() {
		if err := deleteOccurrenceSubscription(ctx, subscriptionID, projectID); err != nil {
			t.Errorf("deleteOccurrenceSubscription: %v", err)
		}
	}()

	// Drain notifications left over from other tests before counting.
	if _, err := occurrencePubsub(ctx, subscriptionID, 10*time.Second, projectID); err != nil {
		t.Fatalf("occurrencePubsub drain: %v", err)
	}

	const wantOccurrences = 3
	done := make(chan error, 1)
	go func() {
		for i := 0; i < wantOccurrences; i++ {
			imageURL := fmt.Sprintf("%s-%s", testImageBase, uuid.NewString())
			occ, err := createOccurrence(ctx, imageURL, noteID, projectID, projectID)
			if err != nil {
				done <- fmt.Errorf("createOccurrence: %w", err)
				return
			}
			if err := deleteOccurrence(ctx, occ.Name); err != nil {
				done <- fmt.Errorf("deleteOccurrence: %w", err)
				return
			}
		}
		done <- nil
	}()

	count, err := occurrencePubsub(ctx, subscriptionID, 60*time.Second, projectID)
	if err != nil {
		t.Fatalf("occurrencePubsub: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	// Each occurrence publishes on create and on delete.
	if count < wantOccurrences {
		t.Errorf("occurrencePubsub received %d notifications, want at least %d", count, wantOccurrences)
	}
}

func TestCreateOccurrenceBadNote(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	imageURL := fmt.Sprintf("%s-%s", testImageBase, uuid.NewString())
	_, err := createOccurrence(ctx, imageURL, "no-such-note-"+uuid.NewString(), projectID, projectID)
	if err == nil {
		t.Fatal("createOccurrence with a missing note succeeded, want error")
	}
	if c := status.Code(err); c != codes.NotFound && c != codes.InvalidArgument {
		t.Errorf("createOccurrence error code = %v, want NotFound or InvalidArgument", c)
	}
}
