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

// Package automl contains samples for the AutoML API.
package automl

import (
	"context"
	"fmt"
	"io"
	"strings"

	automl "cloud.google.com/go/automl/apiv1"
	"cloud.google.com/go/automl/apiv1/automlpb"
	"google.golang.org/api/iterator"
)

// listDatasets lists the datasets available in the us-central1 region of the
// project and prints the type specific metadata of each.
func listDatasets(w io.Writer, projectID string) error {
	ctx := context.Background()
	client, err := automl.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &automlpb.ListDatasetsRequest{
		Parent: fmt.Sprintf("projects/%s/locations/us-central1", projectID),
	}

	fmt.Fprintf(w, "List of datasets:\n")
	it := client.ListDatasets(ctx, req)
	for {
		dataset, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("ListDatasets.Next: %w", err)
		}

		nameParts := strings.Split(dataset.GetName(), "/")
		fmt.Fprintf(w, "Dataset name: %v\n", dataset.GetName())
		fmt.Fprintf(w, "Dataset id: %v\n", nameParts[len(nameParts)-1])
		fmt.Fprintf(w, "Dataset display name: %v\n", dataset.GetDisplayName())
		fmt.Fprintf(w, "Dataset create time:\n")
		fmt.Fprintf(w, "\tseconds: %v\n", dataset.GetCreateTime().GetSeconds())
		fmt.Fprintf(w, "\tnanos: %v\n", dataset.GetCreateTime().GetNanos())

		// Each dataset type has its own metadata message; only the one
		// matching the dataset's type is set.
		if m := dataset.GetTextExtractionDatasetMetadata(); m != nil {
			fmt.Fprintf(w, "Text extraction dataset metadata: %v\n", m)
		}
		if m := dataset.GetTextSentimentDatasetMetadata(); m != nil {
			fmt.Fprintf(w, "Text sentiment dataset metadata: %v\n", m)
		}
		if m := dataset.GetTextClassificationDatasetMetadata(); m != nil {
			fmt.Fprintf(w, "Text classification dataset metadata: %v\n", m)
		}
		if m := dataset.GetTranslationDatasetMetadata(); m != nil {
			fmt.Fprintf(w, "Translation dataset metadata:\n")
			fmt.Fprintf(w, "\tsource_language_code: %v\n", m.GetSourceLanguageCode())
			fmt.Fprintf(w, "\ttarget_language_code: %v\n", m.GetTargetLanguageCode())
		}
		if m := dataset.GetImageClassificationDatasetMetadata(); m != nil {
			fmt.Fprintf(w, "Image classification dataset metadata: %v\n", m)
		}
		if m := dataset.GetImageObjectDetectionDatasetMetadata(); m != nil {
			fmt.Fprintf(w, "Image object detection dataset metadata: %v\n", m)
		}
	}

	return nil
}
