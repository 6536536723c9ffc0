package speech

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietvoice/voicebank/internal/capture"
	"github.com/vietvoice/voicebank/internal/services/cache"
	apperrors "github.com/vietvoice/voicebank/pkg/errors"
	"github.com/youpy/go-wav"
)

// fakeSource serves scripted per-word sample buffers as WAV payloads.
type fakeSource struct {
	clips map[string][]int16
	reads int
}

func (f *fakeSource) Audio(ctx context.Context, profileID, word string) ([]byte, error) {
	f.reads++
	clip, ok := f.clips[word]
	if !ok {
		return nil, apperrors.NotFound("vocabulary record", word)
	}
	return capture.EncodeWAV(clip, 16000, 1)
}

func decodeAll(t *testing.T, data []byte) []int16 {
	t.Helper()
	reader := wav.NewReader(bytes.NewReader(data))
	var samples []int16
	for {
		chunk, err := reader.ReadSamples(1024)
		for _, s := range chunk {
			samples = append(samples, int16(s.Values[0]))
		}
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	return samples
}

func TestSynthesizeConcatenatesInTokenOrder(t *testing.T) {
	svc := NewService(&fakeSource{clips: map[string][]int16{
		"xin":  {1, 1},
		"chào": {2, 2, 2},
	}}, nil)

	result, err := svc.Synthesize(context.Background(), "p1", "Xin chào xin")
	require.NoError(t, err)

	assert.Equal(t, uint32(16000), result.SampleRate)
	assert.Empty(t, result.Missing)
	// Duplicates are kept: xin, chào, xin.
	assert.Equal(t, []int16{1, 1, 2, 2, 2, 1, 1}, decodeAll(t, result.Audio))
}

func TestSynthesizeInsertsPauseForPunctuation(t *testing.T) {
	svc := NewService(&fakeSource{clips: map[string][]int16{
		"chào": {2},
		"bạn":  {3},
	}}, nil)

	result, err := svc.Synthesize(context.Background(), "p1", "chào, bạn")
	require.NoError(t, err)

	samples := decodeAll(t, result.Audio)
	pause := 16000 / pauseFraction
	require.Len(t, samples, 2+pause)
	assert.Equal(t, int16(2), samples[0])
	assert.Equal(t, int16(0), samples[1])
	assert.Equal(t, int16(3), samples[len(samples)-1])
}

func TestSynthesizeReportsMissingWords(t *testing.T) {
	svc := NewService(&fakeSource{clips: map[string][]int16{
		"chào": {2},
	}}, nil)

	result, err := svc.Synthesize(context.Background(), "p1", "chào bạn")
	require.NoError(t, err)

	assert.Equal(t, []string{"bạn"}, result.Missing)
	assert.Equal(t, []int16{2}, decodeAll(t, result.Audio))
}

func TestSynthesizeWithNothingRecorded(t *testing.T) {
	svc := NewService(&fakeSource{clips: map[string][]int16{}}, nil)

	_, err := svc.Synthesize(context.Background(), "p1", "chào bạn")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestSynthesizeServesRepeatsFromCache(t *testing.T) {
	source := &fakeSource{clips: map[string][]int16{"chào": {2}}}
	utterances := cache.NewUtteranceCache(0, time.Minute)
	defer utterances.Stop()
	svc := NewService(source, utterances)

	first, err := svc.Synthesize(context.Background(), "p1", "chào")
	require.NoError(t, err)

	second, err := svc.Synthesize(context.Background(), "p1", "chào")
	require.NoError(t, err)
	assert.Equal(t, first.Audio, second.Audio)
	assert.Equal(t, 1, source.reads, "repeat should not re-read the word file")

	svc.InvalidateProfile("p1")
	_, err = svc.Synthesize(context.Background(), "p1", "chào")
	require.NoError(t, err)
	assert.Equal(t, 2, source.reads)
}

func TestSynthesizeDoesNotCachePartialResults(t *testing.T) {
	source := &fakeSource{clips: map[string][]int16{"chào": {2}}}
	utterances := cache.NewUtteranceCache(0, time.Minute)
	defer utterances.Stop()
	svc := NewService(source, utterances)

	result, err := svc.Synthesize(context.Background(), "p1", "chào bạn")
	require.NoError(t, err)
	require.Equal(t, []string{"bạn"}, result.Missing)

	source.clips["bạn"] = []int16{3}
	result, err = svc.Synthesize(context.Background(), "p1", "chào bạn")
	require.NoError(t, err)
	assert.Empty(t, result.Missing, "newly recorded word should be picked up")
}

func TestSynthesizeEmptyText(t *testing.T) {
	svc := NewService(&fakeSource{}, nil)

	_, err := svc.Synthesize(context.Background(), "p1", "   ")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
}
