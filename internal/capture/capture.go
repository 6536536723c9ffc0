// Package capture abstracts the audio-input device used to record
// per-word samples. The device is an exclusive resource: a Handle must
// be fully released before the device can be acquired again.
package capture

import (
	"context"

	"github.com/vietvoice/voicebank/pkg/errors"
)

// Device grants exclusive access to an audio input.
type Device interface {
	// Acquire opens the input device. Failure modes are distinguished so
	// the user knows the corrective action: DEVICE_PERMISSION,
	// DEVICE_NOT_FOUND or DEVICE_BUSY.
	Acquire(ctx context.Context) (Handle, error)
}

// Handle is an open, exclusive hold on the input device.
type Handle interface {
	// Start begins capturing samples.
	Start() error

	// Stop ends capturing and returns everything captured so far as
	// encoded WAV bytes. Stopping a handle that never started returns
	// an empty buffer.
	Stop() ([]byte, error)

	// Release stops all underlying tracks and frees the device. Safe to
	// call more than once.
	Release()
}

// PermissionDenied reports that microphone access was refused.
func PermissionDenied(cause error) error {
	return errors.Wrap(cause, errors.ErrCodeDevicePermission,
		"microphone access denied, check recording permissions")
}

// NoDevice reports that no usable audio input exists.
func NoDevice(cause error) error {
	return errors.Wrap(cause, errors.ErrCodeDeviceNotFound,
		"no audio input device found")
}

// DeviceBusy reports that the input device is held by someone else.
func DeviceBusy(cause error) error {
	return errors.Wrap(cause, errors.ErrCodeDeviceBusy,
		"audio input device is busy, close other recording applications")
}
