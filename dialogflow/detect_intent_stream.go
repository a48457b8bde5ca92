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

// Package dialogflow contains samples for the Dialogflow API.
package dialogflow

import (
	"context"
	"fmt"
	"io"

	dialogflow "cloud.google.com/go/dialogflow/apiv2"
	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
)

// Audio streaming parameters. Most modern microphones record at this rate.
const (
	sampleRateHertz = 44100
	chunkSize       = sampleRateHertz / 10
)

// initialStreamingRequest builds the first streaming request, which always
// carries the session configuration instead of audio.
func initialStreamingRequest(projectID, sessionID, languageCode string) *dialogflowpb.StreamingDetectIntentRequest {
	return &dialogflowpb.StreamingDetectIntentRequest{
		Session: fmt.Sprintf("projects/%s/agent/sessions/%s", projectID, sessionID),
		QueryInput: &dialogflowpb.QueryInput{
			Input: &dialogflowpb.QueryInput_AudioConfig{
				AudioConfig: &dialogflowpb.InputAudioConfig{
					AudioEncoding:   dialogflowpb.AudioEncoding_AUDIO_ENCODING_LINEAR_16,
					SampleRateHertz: sampleRateHertz,
					LanguageCode:    languageCode,
				},
			},
		},
		OutputAudioConfig: &dialogflowpb.OutputAudioConfig{
			AudioEncoding:   dialogflowpb.OutputAudioEncoding_OUTPUT_AUDIO_ENCODING_LINEAR_16,
			SampleRateHertz: sampleRateHertz,
			SynthesizeSpeechConfig: &dialogflowpb.SynthesizeSpeechConfig{
				Voice: &dialogflowpb.VoiceSelectionParams{
					SsmlGender: dialogflowpb.SsmlVoiceGender_SSML_VOICE_GENDER_FEMALE,
				},
			},
		},
	}
}

// detectIntentStream streams LINEAR16 audio from the reader to Dialogflow,
// prints intermediate and final transcripts as they arrive, and returns the
// synthesized voice response.
func detectIntentStream(w io.Writer, projectID, sessionID, languageCode string, audio io.Reader) ([]byte, error) {
	ctx := context.Background()
	client, err := dialogflow.NewSessionsClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewSessionsClient: %w", err)
	}
	defer client.Close()

	stream, err := client.StreamingDetectIntent(ctx)
	if err != nil {
		return nil, fmt.Errorf("StreamingDetectIntent: %w", err)
	}

	if err := stream.Send(initialStreamingRequest(projectID, sessionID, languageCode)); err != nil {
		return nil, fmt.Errorf("sending the configuration request: %w", err)
	}

	// Pump audio chunks in the background; the service starts responding
	// before the input is exhausted.
	sendErr := make(chan error, 1)
	go func() {
		defer close(sendErr)
		buf := make([]byte, chunkSize)
		for {
			n, err := audio.Read(buf)
			if n > 0 {
				req := &dialogflowpb.StreamingDetectIntentRequest{
					InputAudio: buf[:n],
				}
				if err := stream.Send(req); err != nil {
					sendErr <- fmt.Errorf("sending audio: %w", err)
					return
				}
			}
			if err == io.EOF {
				if err := stream.CloseSend(); err != nil {
					sendErr <- fmt.Errorf("closing the send direction: %w", err)
				}
				return
			}
			if err != nil {
				sendErr <- fmt.Errorf("reading audio: %w", err)
				return
			}
		}
	}()

	var outputAudio []byte
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("receiving a streaming response: %w", err)
		}

		if result := resp.GetRecognitionResult(); result != nil {
			if result.GetIsFinal() {
				fmt.Fprintf(w, "Final transcription: %s\n", result.GetTranscript())
			} else {
				fmt.Fprintf(w, "Intermediate transcription: %s\n", result.GetTranscript())
			}
		}
		if queryResult := resp.GetQueryResult(); queryResult.GetQueryText() != "" {
			fmt.Fprintf(w, "Fulfillment text: %s\n", queryResult.GetFulfillmentText())
			fmt.Fprintf(w, "Intent: %s\n", queryResult.GetIntent().GetDisplayName())
		}
		if len(resp.GetOutputAudio()) > 0 {
			outputAudio = resp.GetOutputAudio()
		}
	}

	if err := <-sendErr; err != nil {
		return nil, err
	}
	return outputAudio, nil
}
