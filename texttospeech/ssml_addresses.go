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

// Package texttospeech contains samples for the Cloud Text-to-Speech API.
package texttospeech

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// textToSSML converts a plain text file to SSML, escaping reserved characters
// and inserting a two second pause after each line so addresses read out one
// at a time.
func textToSSML(inputFile string) (string, error) {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", inputFile, err)
	}
	escaped := html.EscapeString(string(raw))
	body := strings.ReplaceAll(escaped, "\n", "\n<break time=\"2s\"/>")
	return "<speak>" + body + "</speak>", nil
}

// ssmlToAudio synthesizes SSML to an MP3 file. Empty SSML writes nothing.
func ssmlToAudio(ctx context.Context, w io.Writer, ssmlText, outFile string) error {
	if ssmlText == "" {
		return nil
	}

	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("NewClient: %w", err)
	}
	defer client.Close()

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Ssml{Ssml: ssmlText},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			SsmlGender:   texttospeechpb.SsmlVoiceGender_MALE,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}
	resp, err := client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("SynthesizeSpeech: %w", err)
	}

	if err := os.WriteFile(outFile, resp.AudioContent, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", outFile, err)
	}
	fmt.Fprintf(w, "Audio content written to file %s\n", outFile)
	return nil
}
