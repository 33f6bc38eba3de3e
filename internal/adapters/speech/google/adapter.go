// Package google provides a Google Cloud Speech-to-Text transcriber
package google

import (
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// Adapter implements speech.Transcriber using non-streaming recognition.
// Clips are short, a single Recognize call covers them
type Adapter struct {
	client *speech.Client
}

// New creates the adapter.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set in the environment
func New(ctx context.Context) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Adapter{client: c}, nil
}

// Transcribe runs one recognition pass over the clip.
// Recordings are browser-captured WebM/Opus at 48 kHz
func (a *Adapter) Transcribe(ctx context.Context, audio []byte) (string, error) {
	resp, err := a.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_WEBM_OPUS,
			SampleRateHertz:            48000,
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", err
	}

	var parts []string
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		parts = append(parts, r.Alternatives[0].Transcript)
	}
	return strings.Join(parts, "\n"), nil
}

// Close releases the underlying client
func (a *Adapter) Close() error {
	return a.client.Close()
}
