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

// Package servicedirectory contains samples for the Service Directory API.
package servicedirectory

import (
	"context"
	"fmt"
	"io"

	servicedirectory "cloud.google.com/go/servicedirectory/apiv1"
	"cloud.google.com/go/servicedirectory/apiv1/servicedirectorypb"
)

// createNamespace creates a namespace to register services under.
func createNamespace(ctx context.Context, w io.Writer, projectID, location, namespaceID string) error {
	client, err := servicedirectory.NewRegistrationClient(ctx)
	if err != nil {
		return fmt.Errorf("NewRegistrationClient: %w", err)
	}
	defer client.Close()

	req := &servicedirectorypb.CreateNamespaceRequest{
		Parent:      fmt.Sprintf("projects/%s/locations/%s", projectID, location),
		NamespaceId: namespaceID,
		Namespace:   &servicedirectorypb.Namespace{},
	}
	resp, err := client.CreateNamespace(ctx, req)
	if err != nil {
		return fmt.Errorf("CreateNamespace: %w", err)
	}
	fmt.Fprintf(w, "Created namespace: %s\n", resp.Name)
	return nil
}

// deleteNamespace deletes a namespace and everything registered under it.
func deleteNamespace(ctx context.Context, projectID, location, namespaceID string) error {
	client, err := servicedirectory.NewRegistrationClient(ctx)
	if err != nil {
		return fmt.Errorf("NewRegistrationClient: %w", err)
	}
	defer client.Close()

	req := &servicedirectorypb.DeleteNamespaceRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/namespaces/%s", projectID, location, namespaceID),
	}
	if err := client.DeleteNamespace(ctx, req); err != nil {
		return fmt.Errorf("DeleteNamespace: %w", err)
	}
	return nil
}

// createService registers a service in a namespace.
func createService(ctx context.Context, w io.Writer, projectID, location, namespaceID, serviceID string) error {
	client, err := servicedirectory.NewRegistrationClient(ctx)
	if err != nil {
		return fmt.Errorf("NewRegistrationClient: %w", err)
	}
	defer client.Close()

	req := &servicedirectorypb.CreateServiceRequest{
		Parent:    fmt.Sprintf("projects/%s/locations/%s/namespaces/%s", projectID, location, namespaceID),
		ServiceId: serviceID,
		Service: &servicedirectorypb.Service{
			Annotations: map[string]string{
				"protocol": "tcp",
			},
		},
	}
	resp, err := client.CreateService(ctx, req)
	if err != nil {
		return fmt.Errorf("CreateService: %w", err)
	}
	fmt.Fprintf(w, "Created service: %s\n", resp.Name)
	return nil
}

// deleteService removes a service and its endpoints.
func deleteService(ctx context.Context, projectID, location, namespaceID, serviceID string) error {
	client, err := servicedirectory.NewRegistrationClient(ctx)
	if err != nil {
		return fmt.Errorf("NewRegistrationClient: %w", err)
	}
	defer client.Close()

	req := &servicedirectorypb.DeleteServiceRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/namespaces/%s/services/%s",
			projectID, location, namespaceID, serviceID),
	}
	if err := client.DeleteService(ctx, req); err != nil {
		return fmt.Errorf("DeleteService: %w", err)
	}
	return nil
}

// createEndpoint adds an address to a registered service.
func createEndpoint(ctx context.Context, w io.Writer, projectID, location, namespaceID, serviceID, endpointID string) error {
	client, err := servicedirectory.NewRegistrationClient(ctx)
	if err != nil {
		return fmt.Errorf("NewRegistrationClient: %w", err)
	}
	defer client.Close()

	req := &servicedirectorypb.CreateEndpointRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s/namespaces/%s/services/%s",
			projectID, location, namespaceID, serviceID),
		EndpointId: endpointID,
		Endpoint: &servicedirectorypb.Endpoint{
			Address: "10.0.0.1",
			Port:    8080,
		},
	}
	resp, err := client.CreateEndpoint(ctx, req)
	if err != nil {
		return fmt.Errorf("CreateEndpoint: %w", err)
	}
	fmt.Fprintf(w, "Created endpoint: %s\n", resp.Name)
	return nil
}

// deleteEndpoint removes an endpoint from a service.
func deleteEndpoint(ctx context.Context, projectID, location, namespaceID, serviceID, endpointID string) error {
	client, err := servicedirectory.NewRegistrationClient(ctx)
	if err != nil {
		return fmt.Errorf("NewRegistrationClient: %w", err)
	}
	defer client.Close()

	req := &servicedirectorypb.DeleteEndpointRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/namespaces/%s/services/%s/endpoints/%s",
			projectID, location, namespaceID, serviceID, endpointID),
	}
	if err := client.DeleteEndpoint(ctx, req); err != nil {
		return fmt.Errorf("DeleteEndpoint: %w", err)
	}
	return nil
}

// resolveService looks up a service and prints its endpoints the way a client
// about to connect would.
func resolveService(ctx context.Context, w io.Writer, projectID, location, namespaceID, serviceID string) error {
	client, err := servicedirectory.NewLookupClient(ctx)
	if err != nil {
		return fmt.Errorf("NewLookupClient: %w", err)
	}
	defer client.Close()

	req := &servicedirectorypb.ResolveServiceRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/namespaces/%s/services/%s",
			projectID, location, namespaceID, serviceID),
	}
	resp, err := client.ResolveService(ctx, req)
	if err != nil {
		return fmt.Errorf("ResolveService: %w", err)
	}
	fmt.Fprintf(w, "Resolved service: %s\n", resp.Service.Name)
	for _, endpoint := range resp.Service.Endpoints {
		fmt.Fprintf(w, "Endpoint: %s (%s:%d)\n", endpoint.Name, endpoint.Address, endpoint.Port)
	}
	return nil
}
