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

// embedContent embeds a piece of text with a text embedding model and prints
// the length of the resulting vector.
func embedContent(w io.Writer, projectID, location, text string) error {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}

	resp, err := client.Models.EmbedContent(ctx, "text-embedding-005", genai.Text(text), nil)
	if err != nil {
		return fmt.Errorf("EmbedContent: %w", err)
	}

	for _, embedding := range resp.Embeddings {
		fmt.Fprintf(w, "Length of embedding vector: %d\n", len(embedding.Values))
	}
	return nil
}
