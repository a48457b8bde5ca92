// Copyright 2025 Google LLC

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

import "testing"

func TestFormatResult(t *testing.T) {
	got := formatResult("What is a car?", "A car is a vehicle.")
	want := "input: What is a car? -> response: A car is a vehicle."
	if got != want {
		t.Errorf("formatResult = %q, want %q", got, want)
	}
}
