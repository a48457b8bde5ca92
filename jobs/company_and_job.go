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
	"fmt"

	"github.com/google/uuid"
	talent "google.golang.org/api/jobs/v3"
)

// createCompany registers a company the sample jobs are posted under.
func createCompany(service *talent.Service, projectID, displayName string) (*talent.Company, error) {
	parent := "projects/" + projectID
	req := &talent.CreateCompanyRequest{
		Company: &talent.Company{
			DisplayName: displayName,
			ExternalId:  fmt.Sprintf("company-%s", uuid.NewString()),
		},
	}
	company, err := service.Projects.Companies.Create(parent, req).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create company %q: %w", displayName, err)
	}
	return company, nil
}

// createJobWithCustomAttributes posts a job carrying the custom attribute the
// histogram search buckets on.
func createJobWithCustomAttributes(service *talent.Service, projectID, companyName, title string) (*talent.Job, error) {
	parent := "projects/" + projectID
	req := &talent.CreateJobRequest{
		Job: &talent.Job{
			Title:         title,
			CompanyName:   companyName,
			RequisitionId: fmt.Sprintf("job-%s", uuid.NewString()),
			Description:   "Design, develop, test, deploy, maintain and improve software.",
			ApplicationInfo: &talent.ApplicationInfo{
				Uris: []string{"https://googlesample.com/career"},
			},
			CustomAttributes: map[string]talent.CustomAttribute{
				"someFieldName1": {
					StringValues: []string{"someValue1"},
					Filterable:   true,
				},
			},
		},
	}
	job, err := service.Projects.Jobs.Create(parent, req).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create job %q: %w", title, err)
	}
	return job, nil
}

// deleteJob removes a posted job.
func deleteJob(service *talent.Service, name string) error {
	if _, err := service.Projects.Jobs.Delete(name).Do(); err != nil {
		return fmt.Errorf("failed to delete job %q: %w", name, err)
	}
	return nil
}

// deleteCompany removes a company; its jobs must be deleted first.
func deleteCompany(service *talent.Service, name string) error {
	if _, err := service.Projects.Companies.Delete(name).Do(); err != nil {
		return fmt.Errorf("failed to delete company %q: %w", name, err)
	}
	return nil
}
