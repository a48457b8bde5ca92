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

// Package generativeai contains samples for generative models on Vertex AI.
package generativeai

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/genai"
)

// functionCallingChat runs a two turn chat where the model requests function
// calls and the caller feeds mock API responses back, letting the model
// summarize them.
func functionCallingChat(w io.Writer, projectID, location string) error {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}

	// Function declarations the model may ask the caller to invoke.
	// Parameters use OpenAPI schema types.
	getProductInfo := &genai.FunctionDeclaration{
		Name:        "get_product_sku",
		Description: "Get the SKU for a product",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"product_name": {Type: genai.TypeString, Description: "Product name"},
			},
		},
	}
	getStoreLocation := &genai.FunctionDeclaration{
		Name:        "get_store_location",
		Description: "Get the location of the closest store",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"location": {Type: genai.TypeString, Description: "Location"},
			},
		},
	}
	retailTool := &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{getProductInfo, getStoreLocation},
	}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
		Tools:       []*genai.Tool{retailTool},
	}

	chat, err := client.Chats.Create(ctx, "gemini-2.0-flash", config, nil)
	if err != nil {
		return fmt.Errorf("failed to start chat: %w", err)
	}

	// First turn: the prompt should make the model call get_product_sku.
	resp, err := chat.SendMessage(ctx, genai.Part{Text: "Do you have the Pixel 8 Pro in stock?"})
	if err != nil {
		return fmt.Errorf("SendMessage: %w", err)
	}
	for _, call := range resp.FunctionCalls() {
		fmt.Fprintf(w, "The model requested a call to %q with args %v\n", call.Name, call.Args)
	}

	// A real application would call an inventory API here; mock data stands
	// in for the external system.
	resp, err = chat.SendMessage(ctx, genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			Name: "get_product_sku",
			Response: map[string]any{
				"content": map[string]any{"sku": "GA04834-US", "in_stock": "yes"},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SendMessage: %w", err)
	}
	fmt.Fprintf(w, "Summary: %s\n", resp.Text())

	// Second turn: the prompt should make the model call get_store_location.
	resp, err = chat.SendMessage(ctx, genai.Part{Text: "Is there a store in Mountain View, CA that I can visit to try it out?"})
	if err != nil {
		return fmt.Errorf("SendMessage: %w", err)
	}
	for _, call := range resp.FunctionCalls() {
		fmt.Fprintf(w, "The model requested a call to %q with args %v\n", call.Name, call.Args)
	}

	resp, err = chat.SendMessage(ctx, genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			Name: "get_store_location",
			Response: map[string]any{
				"content": map[string]any{"store": "2000 N Shoreline Blvd, Mountain View, CA 94043, US"},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SendMessage: %w", err)
	}
	fmt.Fprintf(w, "Summary: %s\n", resp.Text())

	return nil
}
