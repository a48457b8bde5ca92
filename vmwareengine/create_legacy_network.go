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

// Package vmwareengine contains samples for the VMware Engine API.
package vmwareengine

import (
	"context"
	"fmt"
	"io"
	"time"

	vmwareengine "cloud.google.com/go/vmwareengine/apiv1"
	"cloud.google.com/go/vmwareengine/apiv1/vmwareenginepb"
)

// Network creation routinely takes tens of minutes.
const createNetworkTimeout = 90 * time.Minute

// legacyNetworkID returns the fixed ID legacy networks must use in a region.
func legacyNetworkID(region string) string {
	return region + "-default"
}

// createLegacyNetwork creates the one legacy VMware Engine network a region
// allows and blocks until the operation finishes.
func createLegacyNetwork(ctx context.Context, w io.Writer, projectID, region string) error {
	client, err := vmwareengine.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &vmwareenginepb.CreateVmwareEngineNetworkRequest{
		Parent:                fmt.Sprintf("projects/%s/locations/%s", projectID, region),
		VmwareEngineNetworkId: legacyNetworkID(region),
		VmwareEngineNetwork: &vmwareenginepb.VmwareEngineNetwork{
			Type:        vmwareenginepb.VmwareEngineNetwork_LEGACY,
			Description: "Legacy network created using gcloud vmware",
		},
	}
	op, err := client.CreateVmwareEngineNetwork(ctx, req)
	if err != nil {
		return fmt.Errorf("CreateVmwareEngineNetwork: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, createNetworkTimeout)
	defer cancel()
	network, err := op.Wait(waitCtx)
	if err != nil {
		return fmt.Errorf("waiting for network creation: %w", err)
	}
	fmt.Fprintf(w, "Created network: %s\n", network.Name)
	return nil
}
