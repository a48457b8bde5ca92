// Package testutil contains shared helpers for the sample tests.
//
// System tests run against live services and are skipped unless the
// GOLANG_SAMPLES_PROJECT_ID environment variable is set.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Environment variable keys read by the sample tests.
const (
	ProjectEnvKey       = "GOLANG_SAMPLES_PROJECT_ID"
	ProjectNumberEnvKey = "GOLANG_SAMPLES_PROJECT_NUMBER"
)

// SystemTest returns the test project ID, skipping the test when it is unset.
func SystemTest(t *testing.T) string {
	t.Helper()
	projectID := os.Getenv(ProjectEnvKey)
	if projectID == "" {
		t.Skipf("%s not set", ProjectEnvKey)
	}
	return projectID
}

// ProjectNumber returns the test project number, skipping the test when it is
// unset. A few APIs (long audio synthesis, for one) address projects by number
// rather than ID.
func ProjectNumber(t *testing.T) string {
	t.Helper()
	projectNumber := os.Getenv(ProjectNumberEnvKey)
	if projectNumber == "" {
		t.Skipf("%s not set", ProjectNumberEnvKey)
	}
	return projectNumber
}

// Retry runs fn up to attempts times with a fixed delay between tries. It
// retries on any error; use RetryOnQuota when only quota errors should retry.
func Retry(ctx context.Context, attempts uint, delay time.Duration, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

// RetryOnQuota runs fn with exponential backoff, retrying only while the
// service reports quota exhaustion or transient unavailability.
func RetryOnQuota(ctx context.Context, attempts uint, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			switch status.Code(err) {
			case codes.ResourceExhausted, codes.Unavailable:
				return true
			}
			return false
		}),
	)
}
