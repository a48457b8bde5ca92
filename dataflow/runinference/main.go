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

// Command runinference is a Beam pipeline that reads prompts from a text
// file, sends each one to a generative model on Vertex AI, and writes the
// responses back out. It runs on any Beam runner, including Dataflow.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/apache/beam/sdks/v2/go/pkg/beam"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/io/textio"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/log"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/register"
	"github.com/apache/beam/sdks/v2/go/pkg/beam/x/beamx"
	"google.golang.org/genai"
)

var (
	input    = flag.String("input", "", "File with one prompt per line")
	output   = flag.String("output", "", "Destination for model responses")
	project  = flag.String("project", "", "Project to run inference in")
	location = flag.String("location", "us-central1", "Vertex AI region")
	model    = flag.String("model", "gemini-2.0-flash-001", "Model to query")
)

const maxResponseTokens = 256

func init() {
	register.DoFn3x1[context.Context, string, func(string), error](&inferFn{})
	register.Emitter1[string]()
}

// inferFn queries a generative model for each element. The client is built
// once per bundle worker in Setup and shared across elements.
type inferFn struct {
	Project  string
	Location string
	Model    string

	client *genai.Client
}

func (f *inferFn) Setup(ctx context.Context) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  f.Project,
		Location: f.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return fmt.Errorf("genai.NewClient: %w", err)
	}
	f.client = client
	return nil
}

func (f *inferFn) ProcessElement(ctx context.Context, prompt string, emit func(string)) error {
	if prompt == "" {
		return nil
	}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: maxResponseTokens,
	}
	resp, err := f.client.Models.GenerateContent(ctx, f.Model, genai.Text(prompt), config)
	if err != nil {
		return fmt.Errorf("GenerateContent: %w", err)
	}
	emit(formatResult(prompt, resp.Text()))
	return nil
}

// formatResult pairs a prompt with its response on a single output line.
func formatResult(prompt, response string) string {
	return fmt.Sprintf("input: %s -> response: %s", prompt, response)
}

func main() {
	flag.Parse()
	beam.Init()
	ctx := context.Background()

	if *input == "" || *output == "" || *project == "" {
		log.Exitf(ctx, "usage: runinference -input gs://... -output gs://... -project my-project")
	}

	p := beam.NewPipeline()
	s := p.Root()

	prompts := textio.Read(s, *input)
	responses := beam.ParDo(s, &inferFn{
		Project:  *project,
		Location: *location,
		Model:    *model,
	}, prompts)
	textio.Write(s, *output, responses)

	if err := beamx.Run(ctx, p); err != nil {
		log.Exitf(ctx, "pipeline failed: %v", err)
	}
}
