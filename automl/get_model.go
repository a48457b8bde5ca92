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

package automl

import (
	"context"
	"fmt"
	"io"

	automl "cloud.google.com/go/automl/apiv1"
	"cloud.google.com/go/automl/apiv1/automlpb"
)

// getModel fetches a model and prints its deployment state.
func getModel(w io.Writer, projectID, modelID string) error {
	ctx := context.Background()
	client, err := automl.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &automlpb.GetModelRequest{
		Name: fmt.Sprintf("projects/%s/locations/us-central1/models/%s", projectID, modelID),
	}

	model, err := client.GetModel(ctx, req)
	if err != nil {
		return fmt.Errorf("GetModel: %w", err)
	}

	deploymentState := "undeployed"
	if model.GetDeploymentState() == automlpb.Model_DEPLOYED {
		deploymentState = "deployed"
	}
	fmt.Fprintf(w, "Model name: %v\n", model.GetName())
	fmt.Fprintf(w, "Model display name: %v\n", model.GetDisplayName())
	fmt.Fprintf(w, "Model deployment state: %v\n", deploymentState)
	return nil
}

// isModelDeployed reports whether the model is currently deployed.
func isModelDeployed(ctx context.Context, client *automl.Client, projectID, modelID string) (bool, error) {
	model, err := client.GetModel(ctx, &automlpb.GetModelRequest{
		Name: fmt.Sprintf("projects/%s/locations/us-central1/models/%s", projectID, modelID),
	})
	if err != nil {
		return false, fmt.Errorf("GetModel: %w", err)
	}
	return model.GetDeploymentState() == automlpb.Model_DEPLOYED, nil
}
