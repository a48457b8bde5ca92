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

package servicedirectory

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/GoogleCloudPlatform/go-docs-samples/internal/testutil"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const location = "us-east1"

func TestServiceDirectoryLifecycle(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	namespaceID := "namespace-" + uuid.NewString()
	serviceID := "service-" + uuid.NewString()
	endpointID := "endpoint-" + uuid.NewString()

	var buf bytes.Buffer
	if err := createNamespace(ctx, &buf, projectID, location, namespaceID); err != nil {
		t.Fatalf("createNamespace: %v", err)
	}
	defer func() {
		if err := deleteNamespace(ctx, projectID, location, namespaceID); err != nil {
			if status.Code(err) != codes.NotFound {
				t.Errorf("deleteNamespace: %v", err)
			}
		}
	}()
	if got := buf.String(); !strings.Contains(got, namespaceID) {
		t.Errorf("createNamespace output %q, want it to contain %q", got, namespaceID)
	}

	buf.Reset()
	if err := createService(ctx, &buf, projectID, location, namespaceID, serviceID); err != nil {
		t.Fatalf("createService: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, serviceID) {
		t.Errorf("createService output %q, want it to contain %q", got, serviceID)
	}

	buf.Reset()
	if err := createEndpoint(ctx, &buf, projectID, location, namespaceID, serviceID, endpointID); err != nil {
		t.Fatalf("createEndpoint: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, endpointID) {
		t.Errorf("createEndpoint output %q, want it to contain %q", got, endpointID)
	}

	buf.Reset()
	if err := resolveService(ctx, &buf, projectID, location, namespaceID, serviceID); err != nil {
		t.Fatalf("resolveService: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, serviceID) {
		t.Errorf("resolveService output %q, want it to contain %q", got, serviceID)
	}
	if !strings.Contains(got, "10.0.0.1:8080") {
		t.Errorf("resolveService output %q, want the endpoint address", got)
	}

	if err := deleteEndpoint(ctx, projectID, location, namespaceID, serviceID, endpointID); err != nil {
		t.Errorf("deleteEndpoint: %v", err)
	}
	if err := deleteService(ctx, projectID, location, namespaceID, serviceID); err != nil {
		t.Errorf("deleteService: %v", err)
	}
	if err := deleteNamespace(ctx, projectID, location, namespaceID); err != nil {
		t.Errorf("deleteNamespace: %v", err)
	}
}
