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

// editImageMaskFree edits the image at inputFile as directed by the prompt,
// without a mask, and writes the first edited result to outputFile. The model
// decides which parts of the image the prompt applies to.
func editImageMaskFree(w io.Writer, projectID, location, inputFile, outputFile, prompt string) error {
	ctx := context.Background()
	client, err := aiplatform.NewPredictionClient(ctx,
		option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)))
	if err != nil {
		return fmt.Errorf("NewPredictionClient: %w", err)
	}
	defer client.Close()

	imageData, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("error reading the input image: %v", err)
	}

	instance, err := structpb.NewValue(map[string]interface{}{
		"prompt": prompt,
		"image": map[string]interface{}{
			"bytesBase64Encoded": base64.StdEncoding.EncodeToString(imageData),
		},
	})
	if err != nil {
		return fmt.Errorf("structpb.NewValue: %w", err)
	}
	parameters, err := structpb.NewValue(map[string]interface{}{
		"sampleCount": 1,
	})
	if err != nil {
		return fmt.Errorf("structpb.NewValue: %w", err)
	}

	req := &aiplatformpb.PredictRequest{
		Endpoint: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/imagegeneration@006",
			projectID, location),
		Instances:  []*structpb.Value{instance},
		Parameters: parameters,
	}

	resp, err := client.Predict(ctx, req)
	if err != nil {
		return fmt.Errorf("Predict: %w", err)
	}
	if len(resp.GetPredictions()) == 0 {
		return fmt.Errorf("the model returned no edited images")
	}

	encoded := resp.GetPredictions()[0].GetStructValue().GetFields()["bytesBase64Encoded"].GetStringValue()
	edited, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("error decoding the edited image: %v", err)
	}
	if err := os.WriteFile(outputFile, edited, 0o644); err != nil {
		return fmt.Errorf("error writing the edited image: %v", err)
	}

	fmt.Fprintf(w, "Edited image written to %s (%d bytes)\n", outputFile, len(edited))
	return nil
}
