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

package dialogflow

import (
	"testing"

	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
)

func TestInitialStreamingRequest(t *testing.T) {
	got := initialStreamingRequest("fake-project", "fake-session", "en-US")

	want := &dialogflowpb.StreamingDetectIntentRequest{
		Session: "projects/fake-project/agent/sessions/fake-session",
		QueryInput: &dialogflowpb.QueryInput{
			Input: &dialogflowpb.QueryInput_AudioConfig{
				AudioConfig: &dialogflowpb.InputAudioConfig{
					AudioEncoding:   dialogflowpb.AudioEncoding_AUDIO_ENCODING_LINEAR_16,
					SampleRateHertz: 44100,
					LanguageCode:    "en-US",
				},
			},
		},
		OutputAudioConfig: &dialogflowpb.OutputAudioConfig{
			AudioEncoding:   dialogflowpb.OutputAudioEncoding_OUTPUT_AUDIO_ENCODING_LINEAR_16,
			SampleRateHertz: 44100,
			SynthesizeSpeechConfig: &dialogflowpb.SynthesizeSpeechConfig{
				Voice: &dialogflowpb.VoiceSelectionParams{
					SsmlGender: dialogflowpb.SsmlVoiceGender_SSML_VOICE_GENDER_FEMALE,
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Errorf("initialStreamingRequest returned diff (-want +got):\n%s", diff)
	}

	// The configuration request must not carry audio.
	if len(got.GetInputAudio()) != 0 {
		t.Errorf("initialStreamingRequest carries %d bytes of audio, want none", len(got.GetInputAudio()))
	}
}
