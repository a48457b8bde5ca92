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

package main

import (
	"context"
	"errors"
	"testing"
)

func TestRegionFromZone(t *testing.T) {
	testCases := []struct {
		zone string
		want string
	}{
		{zone: "us-central1-a", want: "us-central1"},
		{zone: "europe-west1-b", want: "europe-west1"},
		{zone: "asia-northeast1-c", want: "asia-northeast1"},
	}
	for _, tc := range testCases {
		got, err := regionFromZone(tc.zone)
		if err != nil {
			t.Errorf("regionFromZone(%q) returned error: %v", tc.zone, err)
			continue
		}
		if got != tc.want {
			t.Errorf("regionFromZone(%q) = %q, want %q", tc.zone, got, tc.want)
		}
	}
}

func TestRegionFromZoneInvalid(t *testing.T) {
	for _, zone := range []string{"", "useast", "us-central1"} {
		if _, err := regionFromZone(zone); err == nil {
			t.Errorf("regionFromZone(%q) succeeded for invalid zone, want error", zone)
		}
	}
}

func TestDriverOutputObject(t *testing.T) {
	got := driverOutputObject("1234-uuid", "job-5678")
	want := "google-cloud-dataproc-metainfo/1234-uuid/jobs/job-5678/driveroutput.000000000"
	if got != want {
		t.Errorf("driverOutputObject = %q, want %q", got, want)
	}
}

func TestWithNewCluster(t *testing.T) {
	ctx := context.Background()
	ok := func(context.Context) error { return nil }
	boom := errors.New("boom")
	fail := func(context.Context) error { return boom }

	testCases := []struct {
		desc                    string
		create, waitRunning, fn func(context.Context) error
		wantErr                 error
		wantTeardown, wantRun   bool
	}{
		{desc: "happy path", create: ok, waitRunning: ok, fn: ok, wantTeardown: true, wantRun: true},
		{desc: "create fails", create: fail, waitRunning: ok, fn: ok, wantErr: boom},
		{desc: "wait fails", create: ok, waitRunning: fail, fn: ok, wantErr: boom, wantTeardown: true},
		{desc: "job fails", create: ok, waitRunning: ok, fn: fail, wantErr: boom, wantTeardown: true, wantRun: true},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			tornDown := false
			teardown := func(context.Context) error {
				tornDown = true
				return nil
			}
			ran := false
			fn := func(ctx context.Context) error {
				ran = true
				return tc.fn(ctx)
			}
			err := withNewCluster(ctx, tc.create, tc.waitRunning, teardown, fn)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("withNewCluster returned %v, want %v", err, tc.wantErr)
			}
			if tornDown != tc.wantTeardown {
				t.Errorf("teardown ran = %t, want %t", tornDown, tc.wantTeardown)
			}
			if ran != tc.wantRun {
				t.Errorf("job ran = %t, want %t", ran, tc.wantRun)
			}
		})
	}
}

func TestWithNewClusterTeardownError(t *testing.T) {
	ctx := context.Background()
	ok := func(context.Context) error { return nil }
	boom := errors.New("boom")

	err := withNewCluster(ctx, ok, ok, func(context.Context) error { return boom }, ok)
	if !errors.Is(err, boom) {
		t.Errorf("withNewCluster returned %v, want the teardown error", err)
	}
}

func TestRegionalClientOptions(t *testing.T) {
	if opts := regionalClientOptions("global"); len(opts) != 0 {
		t.Errorf("regionalClientOptions(global) returned %d options, want none", len(opts))
	}
	if opts := regionalClientOptions("us-central1"); len(opts) != 1 {
		t.Errorf("regionalClientOptions(us-central1) returned %d options, want 1", len(opts))
	}
}
