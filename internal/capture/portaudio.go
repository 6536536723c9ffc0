package capture

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioConfig holds capture parameters for the PortAudio device.
type PortAudioConfig struct {
	SampleRate      float64
	Channels        int
	FramesPerBuffer int
}

// PortAudioDevice captures microphone audio through PortAudio.
type PortAudioDevice struct {
	cfg PortAudioConfig
}

// NewPortAudioDevice creates a PortAudio-backed capture device.
func NewPortAudioDevice(cfg PortAudioConfig) *PortAudioDevice {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	if cfg.FramesPerBuffer <= 0 {
		cfg.FramesPerBuffer = 1024
	}
	return &PortAudioDevice{cfg: cfg}
}

// Acquire initializes PortAudio and opens the default input stream.
func (d *PortAudioDevice) Acquire(ctx context.Context) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, classifyPortAudioError(err)
	}

	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, NoDevice(err)
	}

	if device.MaxInputChannels < d.cfg.Channels {
		portaudio.Terminate()
		return nil, NoDevice(fmt.Errorf("device %q has no input channels", device.Name))
	}

	h := &portAudioHandle{cfg: d.cfg}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: d.cfg.Channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      d.cfg.SampleRate,
		FramesPerBuffer: d.cfg.FramesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, func(in []int16) {
		h.mu.Lock()
		if h.recording {
			h.samples = append(h.samples, in...)
		}
		h.mu.Unlock()
	})
	if err != nil {
		portaudio.Terminate()
		return nil, classifyPortAudioError(err)
	}

	h.stream = stream
	return h, nil
}

type portAudioHandle struct {
	cfg    PortAudioConfig
	stream *portaudio.Stream

	mu        sync.Mutex
	samples   []int16
	recording bool
	released  bool
}

func (h *portAudioHandle) Start() error {
	h.mu.Lock()
	h.samples = h.samples[:0]
	h.recording = true
	h.mu.Unlock()

	if err := h.stream.Start(); err != nil {
		h.mu.Lock()
		h.recording = false
		h.mu.Unlock()
		return classifyPortAudioError(err)
	}
	return nil
}

func (h *portAudioHandle) Stop() ([]byte, error) {
	h.mu.Lock()
	wasRecording := h.recording
	h.recording = false
	h.mu.Unlock()

	if !wasRecording {
		return nil, nil
	}

	if err := h.stream.Stop(); err != nil {
		return nil, fmt.Errorf("stopping audio stream: %w", err)
	}

	h.mu.Lock()
	samples := make([]int16, len(h.samples))
	copy(samples, h.samples)
	h.mu.Unlock()

	if len(samples) == 0 {
		return nil, nil
	}

	return EncodeWAV(samples, uint32(h.cfg.SampleRate), uint16(h.cfg.Channels))
}

func (h *portAudioHandle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.recording = false
	h.mu.Unlock()

	if h.stream != nil {
		_ = h.stream.Close()
	}
	_ = portaudio.Terminate()
}

// classifyPortAudioError maps PortAudio failures onto the capture error
// taxonomy so each gets a distinct, actionable message.
func classifyPortAudioError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission") || strings.Contains(msg, "denied"):
		return PermissionDenied(err)
	case strings.Contains(msg, "no default input") || strings.Contains(msg, "no device") ||
		strings.Contains(msg, "invalid device"):
		return NoDevice(err)
	case strings.Contains(msg, "busy") || strings.Contains(msg, "in use") ||
		strings.Contains(msg, "unavailable"):
		return DeviceBusy(err)
	default:
		return DeviceBusy(err)
	}
}
