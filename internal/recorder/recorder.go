// Package recorder implements the per-word capture state machine:
//
//	Idle -> Countdown -> Recording -> Captured -> Uploading -> Saved
//
// with the ConfirmOverwrite branch out of Captured when the word already
// exists remotely, plus Skipped and Error terminals. The session
// controller drives one Recorder across a word list.
package recorder

import (
	"context"
	"time"

	"github.com/vietvoice/voicebank/internal/capture"
	"github.com/vietvoice/voicebank/pkg/errors"
)

// Phase is the capture attempt's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseRecording
	PhaseCaptured
	PhaseConfirmOverwrite
	PhaseUploading
	PhaseSaved
	PhaseSkipped
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseRecording:
		return "recording"
	case PhaseCaptured:
		return "captured"
	case PhaseConfirmOverwrite:
		return "confirm-overwrite"
	case PhaseUploading:
		return "uploading"
	case PhaseSaved:
		return "saved"
	case PhaseSkipped:
		return "skipped"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Config holds capture timings.
type Config struct {
	CountdownSeconds int
	WindowSeconds    int
}

// Recorder runs a single word's capture attempt. It is not safe for
// concurrent use; the session serializes access.
type Recorder struct {
	device capture.Device
	cfg    Config

	// sleep is injected by tests to avoid real time.
	sleep func(ctx context.Context, d time.Duration) error

	// OnTick, when set, observes each countdown second remaining.
	OnTick func(remaining int)

	phase   Phase
	handle  capture.Handle
	buf     []byte
	lastErr string
}

// New creates a Recorder over the given capture device.
func New(device capture.Device, cfg Config) *Recorder {
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = 3
	}
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = 3
	}
	return &Recorder{
		device: device,
		cfg:    cfg,
		sleep:  sleepCtx,
		phase:  PhaseIdle,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Phase returns the current lifecycle state.
func (r *Recorder) Phase() Phase { return r.phase }

// Buffer returns the captured WAV bytes, nil outside Captured,
// ConfirmOverwrite, Uploading and Error (where it is retained for
// retry).
func (r *Recorder) Buffer() []byte { return r.buf }

// LastError returns the message from the most recent failure.
func (r *Recorder) LastError() string { return r.lastErr }

// Begin runs the countdown and opens the recording window: Idle (or a
// re-record out of Captured/Error) -> Countdown -> Recording. The
// countdown ticks once per second and is cancellable only through ctx
// (session abort). Any previously held device handle is force-released
// before acquisition; the handle is an exclusive resource.
func (r *Recorder) Begin(ctx context.Context) error {
	switch r.phase {
	case PhaseIdle, PhaseCaptured, PhaseError:
	default:
		return errors.Newf(errors.ErrCodeValidation, "cannot start recording from %s", r.phase)
	}

	r.forceRelease()
	r.buf = nil
	r.lastErr = ""
	r.phase = PhaseCountdown

	for remaining := r.cfg.CountdownSeconds; remaining > 0; remaining-- {
		if r.OnTick != nil {
			r.OnTick(remaining)
		}
		if err := r.sleep(ctx, time.Second); err != nil {
			r.phase = PhaseIdle
			return err
		}
	}

	handle, err := r.device.Acquire(ctx)
	if err != nil {
		r.fail(err)
		return err
	}

	if err := handle.Start(); err != nil {
		handle.Release()
		r.fail(err)
		return err
	}

	r.handle = handle
	r.phase = PhaseRecording
	return nil
}

// WaitWindow blocks for the fixed recording window, then stops. The
// window length is independent of any network condition.
func (r *Recorder) WaitWindow(ctx context.Context) error {
	if r.phase != PhaseRecording {
		return errors.Newf(errors.ErrCodeValidation, "recording window requires recording phase, have %s", r.phase)
	}
	if err := r.sleep(ctx, time.Duration(r.cfg.WindowSeconds)*time.Second); err != nil {
		r.forceRelease()
		r.phase = PhaseIdle
		return err
	}
	return r.Stop()
}

// Stop ends the recording: Recording -> Captured, or back to Idle with
// an EMPTY_RECORDING error when nothing was captured. Calling Stop in
// any other phase is a no-op.
func (r *Recorder) Stop() error {
	if r.phase != PhaseRecording {
		return nil
	}

	data, err := r.handle.Stop()
	r.forceRelease()

	if err != nil {
		r.fail(err)
		return err
	}

	if len(data) == 0 {
		emptyErr := errors.EmptyRecording("")
		r.phase = PhaseIdle
		r.lastErr = emptyErr.Message
		return emptyErr
	}

	r.buf = data
	r.phase = PhaseCaptured
	return nil
}

// RequireOverwriteConfirmation moves Captured -> ConfirmOverwrite for a
// word known to exist remotely. Uploads are destructive server-side, so
// the machine never reaches Saved for such a word without this stop.
// Uploading is also accepted: the server may report a conflict the local
// snapshot missed, which routes the attempt back to the confirmation
// stop with its buffer intact.
func (r *Recorder) RequireOverwriteConfirmation() error {
	if r.phase != PhaseCaptured && r.phase != PhaseUploading {
		return errors.Newf(errors.ErrCodeValidation, "overwrite confirmation requires a captured buffer, have %s", r.phase)
	}
	r.phase = PhaseConfirmOverwrite
	return nil
}

// MarkUploading moves Captured or ConfirmOverwrite -> Uploading. A
// retry out of Error is allowed when the failed upload's buffer was
// retained.
func (r *Recorder) MarkUploading() error {
	switch {
	case r.phase == PhaseCaptured || r.phase == PhaseConfirmOverwrite:
	case r.phase == PhaseError && len(r.buf) > 0:
	default:
		return errors.Newf(errors.ErrCodeValidation, "upload requires a captured buffer, have %s", r.phase)
	}
	r.phase = PhaseUploading
	return nil
}

// MarkSaved finalizes a successful upload and discards the buffer.
func (r *Recorder) MarkSaved() {
	r.buf = nil
	r.phase = PhaseSaved
}

// MarkUploadFailed records an upload failure. The captured buffer is
// retained so the user can retry without re-recording.
func (r *Recorder) MarkUploadFailed(msg string) {
	r.lastErr = msg
	r.phase = PhaseError
}

// MarkSkipped records the user declining an overwrite; the buffer is
// discarded and the word stays unrecorded.
func (r *Recorder) MarkSkipped() {
	r.buf = nil
	r.phase = PhaseSkipped
}

// Reset returns the machine to Idle for the next word, releasing any
// device handle and discarding any buffer.
func (r *Recorder) Reset() {
	r.forceRelease()
	r.buf = nil
	r.lastErr = ""
	r.phase = PhaseIdle
}

func (r *Recorder) fail(err error) {
	r.forceRelease()
	r.buf = nil
	r.lastErr = err.Error()
	r.phase = PhaseError
}

func (r *Recorder) forceRelease() {
	if r.handle != nil {
		r.handle.Release()
		r.handle = nil
	}
}

// SetSleepForTest replaces the countdown/window timer. Test hook only.
func (r *Recorder) SetSleepForTest(sleep func(ctx context.Context, d time.Duration) error) {
	r.sleep = sleep
}
