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

package generativeai

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/genai"
)

// countTokens counts the tokens of a prompt before sending it and prints the
// usage metadata of the response afterwards.
func countTokens(w io.Writer, projectID, location string) error {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}

	const model = "gemini-2.0-flash"
	contents := genai.Text("why is the sky blue?")

	count, err := client.Models.CountTokens(ctx, model, contents, nil)
	if err != nil {
		return fmt.Errorf("CountTokens: %w", err)
	}
	fmt.Fprintf(w, "Prompt token count: %d\n", count.TotalTokens)

	resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return fmt.Errorf("GenerateContent: %w", err)
	}
	usage := resp.UsageMetadata
	fmt.Fprintf(w, "Prompt tokens: %d\n", usage.PromptTokenCount)
	fmt.Fprintf(w, "Candidate tokens: %d\n", usage.CandidatesTokenCount)
	fmt.Fprintf(w, "Total tokens: %d\n", usage.TotalTokenCount)
	return nil
}
