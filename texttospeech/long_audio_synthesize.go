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

package texttospeech

import (
	"context"
	"fmt"
	"io"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// synthesizeLongAudio synthesizes text too long for the synchronous API and
// writes the result to a GCS URI. The parent must use the project number, not
// the project ID. Blocks until the operation finishes.
func synthesizeLongAudio(ctx context.Context, w io.Writer, projectNumber, location, text, outputGcsURI string) error {
	client, err := texttospeech.NewTextToSpeechLongAudioSynthesizeClient(ctx)
	if err != nil {
		return fmt.Errorf("NewTextToSpeechLongAudioSynthesizeClient: %w", err)
	}
	defer client.Close()

	req := &texttospeechpb.SynthesizeLongAudioRequest{
		Parent: fmt.Sprintf("projects/%s/locations/%s", projectNumber, location),
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         "en-US-Standard-A",
		},
		OutputGcsUri: outputGcsURI,
	}
	op, err := client.SynthesizeLongAudio(ctx, req)
	if err != nil {
		return fmt.Errorf("SynthesizeLongAudio: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for synthesis: %w", err)
	}
	fmt.Fprintf(w, "Finished processing, audio is at %s\n", outputGcsURI)
	return nil
}
