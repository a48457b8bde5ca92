// Copyright 2025 Google LLC

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     https://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package generativeai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// multimodalEmbedding embeds a text prompt and an image into the same vector
// space and prints the dimensions of both embeddings. imageFile may be empty
// for a text-only request.
func multimodalEmbedding(w io.Writer, projectID, location, text, imageFile string) error {
	ctx := context.Background()
	client, err := aiplatform.NewPredictionClient(ctx,
		option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)))
	if err != nil {
		return fmt.Errorf("NewPredictionClient: %w", err)
	}
	defer client.Close()

	instanceFields := map[string]interface{}{
		"text": text,
	}
	if imageFile != "" {
		imageData, err := os.ReadFile(imageFile)
		if err != nil {
			return fmt.Errorf("error reading the image: %v", err)
		}
		instanceFields["image"] = map[string]interface{}{
			"bytesBase64Encoded": base64.StdEncoding.EncodeToString(imageData),
		}
	}
	instance, err := structpb.NewValue(instanceFields)
	if err != nil {
		return fmt.Errorf("structpb.NewValue: %w", err)
	}

	req := &aiplatformpb.PredictRequest{
		Endpoint: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/multimodalembedding@001",
			projectID, location),
		Instances: []*structpb.Value{instance},
	}

	resp, err := client.Predict(ctx, req)
	if err != nil {
		return fmt.Errorf("Predict: %w", err)
	}
	if len(resp.GetPredictions()) == 0 {
		return fmt.Errorf("the model returned no embeddings")
	}

	fields := resp.GetPredictions()[0].GetStructValue().GetFields()
	if textEmbedding, ok := fields["textEmbedding"]; ok {
		fmt.Fprintf(w, "Text embedding dimensions: %d\n", len(textEmbedding.GetListValue().GetValues()))
	}
	if imageEmbedding, ok := fields["imageEmbedding"]; ok {
		fmt.Fprintf(w, "Image embedding dimensions: %d\n", len(imageEmbedding.GetListValue().GetValues()))
	}
	return nil
}
