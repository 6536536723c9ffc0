package capture

import (
	"bytes"
	"fmt"

	wav "github.com/youpy/go-wav"
)

const bitsPerSample = 16

// EncodeWAV encodes raw 16-bit PCM samples as a mono/stereo WAV byte
// buffer. Zero samples yields a header-only file; callers treat that as
// an empty recording.
func EncodeWAV(samples []int16, sampleRate uint32, channels uint16) ([]byte, error) {
	if channels == 0 {
		channels = 1
	}

	var buf bytes.Buffer
	numSamples := uint32(len(samples)) / uint32(channels)
	writer := wav.NewWriter(&buf, numSamples, channels, sampleRate, bitsPerSample)

	wavSamples := make([]wav.Sample, numSamples)
	for i := range wavSamples {
		wavSamples[i].Values[0] = int(samples[i*int(channels)])
		if channels > 1 {
			wavSamples[i].Values[1] = int(samples[i*int(channels)+1])
		}
	}

	if err := writer.WriteSamples(wavSamples); err != nil {
		return nil, fmt.Errorf("encoding wav: %w", err)
	}

	return buf.Bytes(), nil
}
