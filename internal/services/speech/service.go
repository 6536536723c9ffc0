// Package speech assembles spoken output by concatenating a profile's
// per-word recordings in token order. There is no synthesis here; a
// word with no recording is reported back, not invented.
package speech

import (
	"bytes"
	"context"
	"io"

	"github.com/vietvoice/voicebank/internal/capture"
	"github.com/vietvoice/voicebank/internal/services/cache"
	"github.com/vietvoice/voicebank/internal/wordlist"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
	"github.com/youpy/go-wav"
)

// pauseFraction sets the silence inserted for punctuation tokens as a
// fraction of a second.
const pauseFraction = 5 // 200ms

// AudioSource provides stored word audio. Satisfied by the vocabulary
// service.
type AudioSource interface {
	Audio(ctx context.Context, profileID, word string) ([]byte, error)
}

// Result is one assembled utterance.
type Result struct {
	Audio      []byte
	SampleRate uint32
	Missing    []string
}

type Service struct {
	source AudioSource
	cache  *cache.UtteranceCache
}

// NewService creates a speech service. The cache may be nil, in which
// case every request re-reads the word files.
func NewService(source AudioSource, utterances *cache.UtteranceCache) *Service {
	return &Service{source: source, cache: utterances}
}

// InvalidateProfile drops cached utterances for the profile. Safe to
// call on a nil service or without a cache.
func (s *Service) InvalidateProfile(profileID string) {
	if s == nil || s.cache == nil {
		return
	}
	s.cache.InvalidateProfile(profileID)
}

// Synthesize tokenizes the text (keeping duplicates, splitting
// punctuation) and splices the matching recordings into one WAV.
// Punctuation tokens become short pauses. Words with no recording are
// skipped and listed in the result.
func (s *Service) Synthesize(ctx context.Context, profileID, text string) (*Result, error) {
	if s.cache != nil {
		if u, ok := s.cache.Get(profileID, text); ok {
			return &Result{Audio: u.Audio, SampleRate: u.SampleRate}, nil
		}
	}

	tokens, err := wordlist.Tokenize(text, wordlist.Options{SplitPunctuation: true})
	if err != nil {
		return nil, err
	}

	var (
		samples    []int16
		sampleRate uint32
		missing    []string
		spoken     int
	)

	for _, token := range tokens {
		if isPunctuation(token) {
			if sampleRate > 0 {
				samples = append(samples, make([]int16, int(sampleRate)/pauseFraction)...)
			}
			continue
		}

		data, err := s.source.Audio(ctx, profileID, token)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrCodeNotFound) {
				missing = append(missing, token)
				continue
			}
			return nil, err
		}

		clip, rate, err := decodeSamples(data)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeStorage, "stored audio for "+token+" is unreadable")
		}
		if sampleRate == 0 {
			sampleRate = rate
		}
		samples = append(samples, clip...)
		spoken++
	}

	if spoken == 0 {
		return nil, apperrors.NotFound("recorded vocabulary for text", text)
	}

	audio, err := capture.EncodeWAV(samples, sampleRate, 1)
	if err != nil {
		return nil, err
	}

	// Partial results are not cached; the missing words may be
	// recorded at any moment.
	if s.cache != nil && len(missing) == 0 {
		s.cache.Put(profileID, text, cache.Utterance{Audio: audio, SampleRate: sampleRate})
	}

	return &Result{Audio: audio, SampleRate: sampleRate, Missing: missing}, nil
}

func isPunctuation(token string) bool {
	switch token {
	case ",", ".", "?", "!", ":", ";":
		return true
	}
	return false
}

// decodeSamples extracts the first channel of a WAV payload as int16.
func decodeSamples(data []byte) ([]int16, uint32, error) {
	reader := wav.NewReader(bytes.NewReader(data))
	format, err := reader.Format()
	if err != nil {
		return nil, 0, err
	}

	var samples []int16
	for {
		chunk, err := reader.ReadSamples(2048)
		for _, sample := range chunk {
			samples = append(samples, int16(sample.Values[0]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}

	return samples, format.SampleRate, nil
}
