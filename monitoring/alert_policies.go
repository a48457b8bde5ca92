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

// Package monitoring contains samples for the Cloud Monitoring API.
package monitoring

import (
	"context"
	"fmt"
	"io"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/api/iterator"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// listAlertPolicies prints the display name and enabled state of every alert
// policy in the project.
func listAlertPolicies(ctx context.Context, w io.Writer, projectID string) error {
	client, err := monitoring.NewAlertPolicyClient(ctx)
	if err != nil {
		return fmt.Errorf("NewAlertPolicyClient: %w", err)
	}
	defer client.Close()

	req := &monitoringpb.ListAlertPoliciesRequest{
		Name: fmt.Sprintf("projects/%s", projectID),
	}
	it := client.ListAlertPolicies(ctx, req)
	for {
		policy, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("ListAlertPolicies.Next: %w", err)
		}
		fmt.Fprintf(w, "%s (enabled: %t)\n", policy.DisplayName, policy.GetEnabled().GetValue())
	}
	return nil
}

// setAlertPoliciesEnabled enables or disables every alert policy matching the
// filter, or all policies when the filter is empty. It returns how many
// policies it changed, skipping policies already in the requested state.
func setAlertPoliciesEnabled(ctx context.Context, w io.Writer, projectID, filter string, enable bool) (int, error) {
	client, err := monitoring.NewAlertPolicyClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("NewAlertPolicyClient: %w", err)
	}
	defer client.Close()

	req := &monitoringpb.ListAlertPoliciesRequest{
		Name:   fmt.Sprintf("projects/%s", projectID),
		Filter: filter,
	}
	changed := 0
	it := client.ListAlertPolicies(ctx, req)
	for {
		policy, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return changed, fmt.Errorf("ListAlertPolicies.Next: %w", err)
		}
		if policy.GetEnabled().GetValue() == enable {
			fmt.Fprintf(w, "Policy %s is already in the requested state.\n", policy.Name)
			continue
		}
		policy.Enabled = wrapperspb.Bool(enable)
		updateReq := &monitoringpb.UpdateAlertPolicyRequest{
			AlertPolicy: policy,
			UpdateMask:  &fieldmaskpb.FieldMask{Paths: []string{"enabled"}},
		}
		if _, err := client.UpdateAlertPolicy(ctx, updateReq); err != nil {
			return changed, fmt.Errorf("UpdateAlertPolicy(%s): %w", policy.Name, err)
		}
		if enable {
			fmt.Fprintf(w, "Enabled %s.\n", policy.Name)
		} else {
			fmt.Fprintf(w, "Disabled %s.\n", policy.Name)
		}
		changed++
	}
	return changed, nil
}
