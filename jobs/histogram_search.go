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

// Package jobs contains samples for the Cloud Talent Solution API.
package jobs

import (
	"fmt"
	"io"

	talent "google.golang.org/api/jobs/v3"
)

// histogramSearchRequest builds a search request that buckets results by
// company and by the someFieldName1 custom attribute. An empty companyName
// searches across all companies.
func histogramSearchRequest(companyName string) *talent.SearchJobsRequest {
	req := &talent.SearchJobsRequest{
		// The request metadata must match the metadata of the associated
		// search requests so results are personalized consistently.
		RequestMetadata: &talent.RequestMetadata{
			UserId:    "HashedUserId",
			SessionId: "HashedSessionId",
			Domain:    "www.google.com",
		},
		SearchMode: "JOB_SEARCH",
		HistogramFacets: &talent.HistogramFacets{
			SimpleHistogramFacets: []string{"COMPANY_ID"},
			CustomAttributeHistogramFacets: []*talent.CustomAttributeHistogramRequest{
				{
					Key:                  "someFieldName1",
					StringValueHistogram: true,
				},
			},
		},
	}
	if companyName != "" {
		req.JobQuery = &talent.JobQuery{
			CompanyNames: []string{companyName},
		}
	}
	return req
}

// histogramSearch runs a histogram search and prints the bucket counts.
func histogramSearch(w io.Writer, service *talent.Service, projectID, companyName string) error {
	parent := "projects/" + projectID

	resp, err := service.Projects.Jobs.Search(parent, histogramSearchRequest(companyName)).Do()
	if err != nil {
		return fmt.Errorf("failed to search for jobs with histogram facets: %w", err)
	}

	fmt.Fprintln(w, "==========")
	if resp.HistogramResults != nil {
		for _, result := range resp.HistogramResults.SimpleHistogramResults {
			fmt.Fprintf(w, "Simple histogram %s: %v\n", result.SearchType, result.Values)
		}
		for _, result := range resp.HistogramResults.CustomAttributeHistogramResults {
			fmt.Fprintf(w, "Custom attribute histogram %s: %v\n", result.Key, result.StringValueHistogramResult)
		}
	}
	for _, match := range resp.MatchingJobs {
		fmt.Fprintf(w, "Matching job: %s\n", match.Job.Title)
	}
	fmt.Fprintln(w, "==========")
	return nil
}
