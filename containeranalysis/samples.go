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

// Package containeranalysis contains samples for the Container Analysis API,
// which stores Grafeas notes and occurrences describing container images.
package containeranalysis

import (
	"context"
	"fmt"

	containeranalysis "cloud.google.com/go/containeranalysis/apiv1"
	grafeaspb "google.golang.org/genproto/googleapis/grafeas/v1"
	"google.golang.org/api/iterator"
)

// createNote creates a vulnerability note that occurrences can attach to.
func createNote(ctx context.Context, noteID, projectID string) (*grafeaspb.Note, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.CreateNoteRequest{
		Parent: fmt.Sprintf("projects/%s", projectID),
		NoteId: noteID,
		Note: &grafeaspb.Note{
			ShortDescription: "A brief vulnerability description",
			Type: &grafeaspb.Note_Vulnerability{
				Vulnerability: &grafeaspb.VulnerabilityNote{
					Details: []*grafeaspb.VulnerabilityNote_Detail{
						{
							AffectedCpeUri:  "your-uri-here",
							AffectedPackage: "your-package-here",
							AffectedVersionStart: &grafeaspb.Version{
								Kind: grafeaspb.Version_MINIMUM,
							},
							AffectedVersionEnd: &grafeaspb.Version{
								Kind: grafeaspb.Version_MAXIMUM,
							},
						},
					},
				},
			},
		},
	}
	return client.GetGrafeasClient().CreateNote(ctx, req)
}

// getNote retrieves a note by its ID.
func getNote(ctx context.Context, noteID, projectID string) (*grafeaspb.Note, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.GetNoteRequest{
		Name: fmt.Sprintf("projects/%s/notes/%s", projectID, noteID),
	}
	return client.GetGrafeasClient().GetNote(ctx, req)
}

// updateNote replaces an existing note.
func updateNote(ctx context.Context, note *grafeaspb.Note, noteID, projectID string) (*grafeaspb.Note, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.UpdateNoteRequest{
		Name: fmt.Sprintf("projects/%s/notes/%s", projectID, noteID),
		Note: note,
	}
	return client.GetGrafeasClient().UpdateNote(ctx, req)
}

// deleteNote removes a note. Occurrences attached to it survive the deletion.
func deleteNote(ctx context.Context, noteID, projectID string) error {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.DeleteNoteRequest{
		Name: fmt.Sprintf("projects/%s/notes/%s", projectID, noteID),
	}
	return client.GetGrafeasClient().DeleteNote(ctx, req)
}

// createOccurrence records that the image at resourceURL is affected by the
// vulnerability the note describes.
func createOccurrence(ctx context.Context, resourceURL, noteID, occProjectID, noteProjectID string) (*grafeaspb.Occurrence, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.CreateOccurrenceRequest{
		Parent: fmt.Sprintf("projects/%s", occProjectID),
		Occurrence: &grafeaspb.Occurrence{
			NoteName:    fmt.Sprintf("projects/%s/notes/%s", noteProjectID, noteID),
			ResourceUri: resourceURL,
			Details: &grafeaspb.Occurrence_Vulnerability{
				Vulnerability: &grafeaspb.VulnerabilityOccurrence{
					PackageIssue: []*grafeaspb.VulnerabilityOccurrence_PackageIssue{
						{
							AffectedCpeUri:  "your-uri-here",
							AffectedPackage: "your-package-here",
							AffectedVersion: &grafeaspb.Version{
								Kind: grafeaspb.Version_MINIMUM,
							},
							FixedCpeUri: "your-uri-here",
							FixedVersion: &grafeaspb.Version{
								Kind: grafeaspb.Version_MAXIMUM,
							},
						},
					},
				},
			},
		},
	}
	return client.GetGrafeasClient().CreateOccurrence(ctx, req)
}

// getOccurrence retrieves an occurrence by its full resource name.
func getOccurrence(ctx context.Context, occurrenceName string) (*grafeaspb.Occurrence, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.GetOccurrenceRequest{Name: occurrenceName}
	return client.GetGrafeasClient().GetOccurrence(ctx, req)
}

// updateOccurrence replaces an existing occurrence.
func updateOccurrence(ctx context.Context, occurrence *grafeaspb.Occurrence, occurrenceName string) (*grafeaspb.Occurrence, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.UpdateOccurrenceRequest{
		Name:       occurrenceName,
		Occurrence: occurrence,
	}
	return client.GetGrafeasClient().UpdateOccurrence(ctx, req)
}

// deleteOccurrence removes an occurrence by its full resource name.
func deleteOccurrence(ctx context.Context, occurrenceName string) error {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.DeleteOccurrenceRequest{Name: occurrenceName}
	return client.GetGrafeasClient().DeleteOccurrence(ctx, req)
}

// occurrencesForImage counts the occurrences attached to the image at
// resourceURL.
func occurrencesForImage(ctx context.Context, resourceURL, projectID string) (int, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.ListOccurrencesRequest{
		Parent: fmt.Sprintf("projects/%s", projectID),
		Filter: fmt.Sprintf("resourceUrl=%q", resourceURL),
	}
	count := 0
	it := client.GetGrafeasClient().ListOccurrences(ctx, req)
	for {
		_, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("ListOccurrences.Next: %w", err)
		}
		count++
	}
	return count, nil
}

// occurrencesForNote counts the occurrences attached to a note.
func occurrencesForNote(ctx context.Context, noteID, projectID string) (int, error) {
	client, err := containeranalysis.NewClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &grafeaspb.ListNoteOccurrencesRequest{
		Name: fmt.Sprintf("projects/%s/notes/%s", projectID, noteID),
	}
	count := 0
	it := client.GetGrafeasClient().ListNoteOccurrences(ctx, req)
	for {
		_, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("ListNoteOccurrences.Next: %w", err)
		}
		count++
	}
	return count, nil
}
