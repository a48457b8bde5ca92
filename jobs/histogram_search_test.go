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

package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GoogleCloudPlatform/go-docs-samples/internal/testutil"

	talent "google.golang.org/api/jobs/v3"
)

func TestHistogramSearchRequest(t *testing.T) {
	req := histogramSearchRequest("projects/p/companies/c")

	if req.SearchMode != "JOB_SEARCH" {
		t.Errorf("SearchMode = %q, want %q", req.SearchMode, "JOB_SEARCH")
	}
	if got := req.HistogramFacets.SimpleHistogramFacets; len(got) != 1 || got[0] != "COMPANY_ID" {
		t.Errorf("SimpleHistogramFacets = %v, want [COMPANY_ID]", got)
	}
	facets := req.HistogramFacets.CustomAttributeHistogramFacets
	if len(facets) != 1 || facets[0].Key != "someFieldName1" || !facets[0].StringValueHistogram {
		t.Errorf("CustomAttributeHistogramFacets = %+v, want a string histogram on someFieldName1", facets)
	}
	if got := req.JobQuery.CompanyNames; len(got) != 1 || got[0] != "projects/p/companies/c" {
		t.Errorf("CompanyNames = %v, want the requested company", got)
	}

	if req := histogramSearchRequest(""); req.JobQuery != nil {
		t.Errorf("histogramSearchRequest(\"\") set a JobQuery, want none")
	}
}

func TestHistogramSearch(t *testing.T) {
	projectID := testutil.SystemTest(t)
	ctx := context.Background()

	service, err := talent.NewService(ctx)
	if err != nil {
		t.Fatalf("talent.NewService: %v", err)
	}

	company, err := createCompany(service, projectID, "Google Sample")
	if err != nil {
		t.Fatalf("createCompany: %v", err)
	}
	defer func() {
		if err := deleteCompany(service, company.Name); err != nil {
			t.Errorf("deleteCompany: %v", err)
		}
	}()

	job, err := createJobWithCustomAttributes(service, projectID, company.Name, "Software Engineer")
	if err != nil {
		t.Fatalf("createJobWithCustomAttributes: %v", err)
	}
	defer func() {
		if err := deleteJob(service, job.Name); err != nil {
			t.Errorf("deleteJob: %v", err)
		}
	}()

	// Search indexing lags job creation; retry until the histogram shows up.
	var buf bytes.Buffer
	err = testutil.Retry(ctx, 10, 10*time.Second, func() error {
		buf.Reset()
		if err := histogramSearch(&buf, service, projectID, company.Name); err != nil {
			return err
		}
		if !strings.Contains(buf.String(), "someFieldName1") {
			return errors.New("the job is not indexed yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("histogramSearch never returned the custom attribute histogram: %v\noutput: %s", err, buf.String())
	}
}
