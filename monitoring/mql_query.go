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

package monitoring

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/api/iterator"
)

// errorRatioQuery builds an MQL query that computes the ratio of responses in
// responseCodeClass over a sliding window, optionally narrowed by predicates.
func errorRatioQuery(tableName, metricType string, predicates []string, lookback, slidingWindow time.Duration, responseCodeClass string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("fetch %s::%s", tableName, metricType))
	if len(predicates) > 0 {
		sb.WriteString(" | ")
		sb.WriteString(fmt.Sprintf("(%s)", strings.Join(predicates, " && ")))
	}
	sb.WriteString(" | ")
	sb.WriteString(fmt.Sprintf("within d'%s'", lookback.String()))
	sb.WriteString(" | ")
	sb.WriteString(fmt.Sprintf("group_by sliding(%v)", slidingWindow))
	sb.WriteString(" | ")
	sb.WriteString(fmt.Sprintf("filter_ratio response_code_class == '%s'", responseCodeClass))
	return sb.String()
}

// queryTimeSeries runs an MQL query and prints each returned point as a
// percentage with its time interval.
func queryTimeSeries(ctx context.Context, w io.Writer, projectID, query string) error {
	client, err := monitoring.NewQueryClient(ctx)
	if err != nil {
		return fmt.Errorf("NewQueryClient: %w", err)
	}
	defer client.Close()

	req := &monitoringpb.QueryTimeSeriesRequest{
		Name:  fmt.Sprintf("projects/%s", projectID),
		Query: query,
	}
	it := client.QueryTimeSeries(ctx, req)
	for {
		series, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("QueryTimeSeries.Next: %w", err)
		}
		for _, p := range series.GetPointData() {
			if len(p.GetValues()) != 1 {
				return fmt.Errorf("expected 1 value per point, got %d", len(p.GetValues()))
			}
			fmt.Fprintf(w, "ratio: %.2f%% [%v, %v]\n",
				p.GetValues()[0].GetDoubleValue()*100,
				p.GetTimeInterval().StartTime.AsTime(),
				p.GetTimeInterval().EndTime.AsTime())
		}
	}
	return nil
}
