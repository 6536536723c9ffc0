// Package session drives one recording session: an ordered word list, a
// cursor, and a per-word capture state machine. The controller exposes a
// narrow command interface (start, record, save, confirm, decline, skip,
// abort) plus an observable snapshot, with no rendering or transport
// concerns of its own.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vietvoice/voicebank/internal/library"
	"github.com/vietvoice/voicebank/internal/recorder"
	"github.com/vietvoice/voicebank/pkg/errors"
)

// Word is one session-local target word.
type Word struct {
	Text           string
	ExistsRemotely bool
	Recorded       bool
}

// Uploader pushes one word's captured audio to the remote vocabulary.
// Satisfied by *library.Client.
type Uploader interface {
	Upload(ctx context.Context, profileID, word string, audio []byte, overwrite bool, idempotencyKey string) (*library.UploadResult, error)
}

// Config wires a Controller.
type Config struct {
	ProfileID string

	// Words is the canonical ordered word list, already deduplicated.
	Words []string

	// Existing is the lowercase snapshot of words already present
	// remotely, taken once at session start. It is the session's only
	// source of truth for existence; the server may still disagree, and
	// a conflict answer then routes through the confirmation stop.
	Existing map[string]struct{}

	Recorder *recorder.Recorder
	Uploader Uploader

	// OnComplete fires once, when the cursor reaches the word count.
	OnComplete func()
}

// Controller owns one recording session. Not safe for concurrent use;
// callers issue one command at a time.
type Controller struct {
	id        string
	profileID string
	words     []Word
	cursor    int
	rec       *recorder.Recorder
	uploader  Uploader

	// attempt counts upload dispatches for the current word; it keys the
	// idempotency value and resets on advance.
	attempt          int
	pendingOverwrite bool

	done       bool
	aborted    bool
	onComplete func()
}

// New builds a Controller over an already-built word list.
func New(cfg Config) (*Controller, error) {
	if len(cfg.Words) == 0 {
		return nil, errors.InvalidInput("cannot start a session on an empty word list")
	}
	if cfg.Recorder == nil || cfg.Uploader == nil {
		return nil, errors.InvalidInput("session requires a recorder and an uploader")
	}

	words := make([]Word, len(cfg.Words))
	for i, text := range cfg.Words {
		_, exists := cfg.Existing[strings.ToLower(text)]
		words[i] = Word{Text: text, ExistsRemotely: exists}
	}

	return &Controller{
		id:         uuid.NewString(),
		profileID:  cfg.ProfileID,
		words:      words,
		cursor:     -1,
		rec:        cfg.Recorder,
		uploader:   cfg.Uploader,
		onComplete: cfg.OnComplete,
	}, nil
}

// ID returns the session identifier.
func (c *Controller) ID() string { return c.id }

// Start positions the cursor on the first word.
func (c *Controller) Start() error {
	if c.cursor >= 0 {
		return errors.Newf(errors.ErrCodeValidation, "session already started")
	}
	c.cursor = 0
	c.rec.Reset()
	return nil
}

// Current returns the word under the cursor, or false when the session
// has not started or has finished.
func (c *Controller) Current() (Word, bool) {
	if c.done || c.cursor < 0 || c.cursor >= len(c.words) {
		return Word{}, false
	}
	return c.words[c.cursor], true
}

// Words returns a copy of the session's word states.
func (c *Controller) Words() []Word {
	out := make([]Word, len(c.words))
	copy(out, c.words)
	return out
}

// Progress is the fraction of resolved words. Monotonic within a
// session; only a brand-new session starts it over.
func (c *Controller) Progress() float64 {
	if c.cursor <= 0 {
		return 0
	}
	return float64(c.cursor) / float64(len(c.words))
}

// Done reports whether the cursor has passed the last word.
func (c *Controller) Done() bool { return c.done }

// Aborted reports whether the session was discarded by the user.
func (c *Controller) Aborted() bool { return c.aborted }

// Record runs one full capture for the current word: countdown, fixed
// recording window, auto-stop. Also used to re-record; the recorder
// discards the prior buffer and re-acquires the device.
func (c *Controller) Record(ctx context.Context) error {
	if _, ok := c.Current(); !ok {
		return errors.Newf(errors.ErrCodeValidation, "no current word to record")
	}
	if err := c.rec.Begin(ctx); err != nil {
		return err
	}
	return c.rec.WaitWindow(ctx)
}

// Save pushes the captured buffer for the current word. A word known to
// exist remotely stops at ConfirmOverwrite instead of uploading; a
// failed upload leaves the machine in Error with the buffer retained,
// and calling Save again retries with a fresh idempotency key.
func (c *Controller) Save(ctx context.Context) error {
	cur, ok := c.Current()
	if !ok {
		return errors.Newf(errors.ErrCodeValidation, "no current word to save")
	}

	switch c.rec.Phase() {
	case recorder.PhaseCaptured:
		if cur.ExistsRemotely {
			return c.rec.RequireOverwriteConfirmation()
		}
		return c.dispatchUpload(ctx, cur.Text, false)
	case recorder.PhaseError:
		return c.dispatchUpload(ctx, cur.Text, c.pendingOverwrite)
	default:
		return errors.Newf(errors.ErrCodeValidation, "cannot save from %s", c.rec.Phase())
	}
}

// ConfirmOverwrite acknowledges replacing the remote audio asset and
// uploads with overwrite set.
func (c *Controller) ConfirmOverwrite(ctx context.Context) error {
	cur, ok := c.Current()
	if !ok {
		return errors.Newf(errors.ErrCodeValidation, "no current word to confirm")
	}
	if c.rec.Phase() != recorder.PhaseConfirmOverwrite {
		return errors.Newf(errors.ErrCodeValidation, "no overwrite confirmation pending for %q", cur.Text)
	}
	return c.dispatchUpload(ctx, cur.Text, true)
}

// DeclineOverwrite keeps the remote audio asset, discards the captured
// buffer, and advances with the word left unrecorded.
func (c *Controller) DeclineOverwrite() error {
	if c.rec.Phase() != recorder.PhaseConfirmOverwrite {
		return errors.Newf(errors.ErrCodeValidation, "no overwrite confirmation pending")
	}
	c.rec.MarkSkipped()
	c.advance()
	return nil
}

// Skip abandons the current word without uploading and advances.
func (c *Controller) Skip() error {
	if _, ok := c.Current(); !ok {
		return errors.Newf(errors.ErrCodeValidation, "no current word to skip")
	}
	if c.rec.Phase() == recorder.PhaseUploading {
		return errors.Newf(errors.ErrCodeValidation, "cannot skip while an upload is in flight")
	}
	c.rec.MarkSkipped()
	c.advance()
	return nil
}

// Abort discards the session at any phase. Any active recording is
// stopped, the device handle released, and no in-flight word is marked
// recorded.
func (c *Controller) Abort() {
	c.rec.Reset()
	c.aborted = true
	c.done = true
}

func (c *Controller) dispatchUpload(ctx context.Context, word string, overwrite bool) error {
	if err := c.rec.MarkUploading(); err != nil {
		return err
	}

	c.attempt++
	c.pendingOverwrite = overwrite
	key := fmt.Sprintf("%s:%s:%d", c.id, word, c.attempt)

	result, err := c.uploader.Upload(ctx, c.profileID, word, c.rec.Buffer(), overwrite, key)
	return c.resolveUpload(word, result, err)
}

// resolveUpload applies an upload outcome. A response for a word that is
// no longer the session's current word is stale and discarded without
// mutating session state.
func (c *Controller) resolveUpload(word string, result *library.UploadResult, err error) error {
	cur, ok := c.Current()
	if !ok || cur.Text != word {
		return nil
	}

	if err != nil {
		c.rec.MarkUploadFailed(err.Error())
		return err
	}

	switch result.Status {
	case library.UploadOK:
		c.words[c.cursor].Recorded = true
		c.rec.MarkSaved()
		c.advance()
		return nil
	case library.UploadConflict:
		c.words[c.cursor].ExistsRemotely = true
		return c.rec.RequireOverwriteConfirmation()
	default:
		uploadErr := errors.UploadError(word, nil)
		c.rec.MarkUploadFailed(uploadErr.Message)
		return uploadErr
	}
}

func (c *Controller) advance() {
	c.cursor++
	c.attempt = 0
	c.pendingOverwrite = false

	if c.cursor >= len(c.words) {
		c.done = true
		c.rec.Reset()
		if c.onComplete != nil {
			c.onComplete()
		}
		return
	}
	c.rec.Reset()
}
