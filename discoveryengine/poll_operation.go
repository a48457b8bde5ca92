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

// Package discoveryengine contains samples for Vertex AI Search
// (gen app builder).
package discoveryengine

import (
	"context"
	"fmt"
	"io"
	"time"

	discoveryengine "cloud.google.com/go/discoveryengine/apiv1"
	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"k8s.io/apimachinery/pkg/util/wait"
)

const (
	// Wait between polls of the operation.
	pollInterval = 10 * time.Second
	// Give up on operations that run longer than this.
	pollingTimeout = 30 * time.Minute
)

// getOperationFunc fetches the current state of a named operation.
type getOperationFunc func(ctx context.Context, name string) (*longrunningpb.Operation, error)

// pollOperation polls the named long-running operation until it is done,
// printing its state after each poll, and returns the final operation.
func pollOperation(ctx context.Context, w io.Writer, get getOperationFunc, name string, interval time.Duration) (*longrunningpb.Operation, error) {
	var op *longrunningpb.Operation
	err := wait.PollUntilContextTimeout(ctx, interval, pollingTimeout, true, func(ctx context.Context) (bool, error) {
		var err error
		op, err = get(ctx, name)
		if err != nil {
			return false, fmt.Errorf("GetOperation: %w", err)
		}
		fmt.Fprintf(w, "Operation %s done: %v\n", op.GetName(), op.GetDone())
		return op.GetDone(), nil
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// pollDocumentOperation polls a document service operation, e.g.
// projects/{project}/locations/{location}/collections/{collection}/dataStores/{data_store}/branches/{branch}/operations/{operation}.
func pollDocumentOperation(w io.Writer, operationName string) (*longrunningpb.Operation, error) {
	ctx := context.Background()
	client, err := discoveryengine.NewDocumentClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewDocumentClient: %w", err)
	}
	defer client.Close()

	get := func(ctx context.Context, name string) (*longrunningpb.Operation, error) {
		return client.GetOperation(ctx, &longrunningpb.GetOperationRequest{Name: name})
	}
	return pollOperation(ctx, w, get, operationName, pollInterval)
}
