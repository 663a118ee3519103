// Package speech turns spoken answers into form values. Speech-to-text
// engines sit behind the Transcriber interface so backends can be swapped or
// chained.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoAudio    = errors.New("no audio received")
	ErrNoSpeech   = errors.New("could not understand audio")
	ErrNoBackends = errors.New("no transcription backend configured")
)

type Transcriber interface {
	// Transcribe returns the text spoken in audio. An empty transcript is
	// reported as ErrNoSpeech, never as "".
	Transcribe(ctx context.Context, audio []byte, mimeType string, lang Language) (string, error)
	Name() string
}

// Fallback tries each backend in order and returns the first transcript.
type Fallback []Transcriber

func (f Fallback) Name() string {
	names := make([]string, 0, len(f))
	for _, t := range f {
		names = append(names, t.Name())
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

func (f Fallback) Transcribe(ctx context.Context, audio []byte, mimeType string, lang Language) (string, error) {
	if len(audio) == 0 {
		return "", ErrNoAudio
	}
	if len(f) == 0 {
		return "", ErrNoBackends
	}

	var errs []error
	for _, t := range f {
		text, err := t.Transcribe(ctx, audio, mimeType, lang)
		if err == nil {
			return text, nil
		}
		log.Warn().Err(err).Str("backend", t.Name()).Msg("transcription backend failed")
		errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", errors.Join(errs...)
}
