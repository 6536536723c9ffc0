package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietvoice/voicebank/internal/capture"
	"github.com/vietvoice/voicebank/internal/library"
	"github.com/vietvoice/voicebank/internal/recorder"
	"github.com/vietvoice/voicebank/pkg/errors"
)

// fakeDevice hands out handles that always capture the scripted bytes.
type fakeDevice struct {
	data []byte
}

func (d *fakeDevice) Acquire(ctx context.Context) (capture.Handle, error) {
	return &fakeHandle{data: d.data}, nil
}

type fakeHandle struct {
	data []byte
}

func (h *fakeHandle) Start() error          { return nil }
func (h *fakeHandle) Stop() ([]byte, error) { return h.data, nil }
func (h *fakeHandle) Release()              {}

// uploadCall records one dispatched upload.
type uploadCall struct {
	Word      string
	Overwrite bool
	Key       string
	Audio     []byte
}

// fakeUploader scripts upload outcomes per call, in order.
type fakeUploader struct {
	calls   []uploadCall
	results []func(word string) (*library.UploadResult, error)
}

func (u *fakeUploader) Upload(ctx context.Context, profileID, word string, audio []byte, overwrite bool, key string) (*library.UploadResult, error) {
	u.calls = append(u.calls, uploadCall{Word: word, Overwrite: overwrite, Key: key, Audio: audio})
	if len(u.results) == 0 {
		return &library.UploadResult{Status: library.UploadOK, Word: word}, nil
	}
	next := u.results[0]
	u.results = u.results[1:]
	return next(word)
}

func ok() func(string) (*library.UploadResult, error) {
	return func(word string) (*library.UploadResult, error) {
		return &library.UploadResult{Status: library.UploadOK, Word: word}, nil
	}
}

func conflict() func(string) (*library.UploadResult, error) {
	return func(word string) (*library.UploadResult, error) {
		return &library.UploadResult{Status: library.UploadConflict, Word: word}, nil
	}
}

func fail(err error) func(string) (*library.UploadResult, error) {
	return func(word string) (*library.UploadResult, error) {
		return nil, err
	}
}

func newTestRecorder() *recorder.Recorder {
	r := recorder.New(&fakeDevice{data: []byte("RIFFdata")}, recorder.Config{CountdownSeconds: 3, WindowSeconds: 3})
	r.SetSleepForTest(func(ctx context.Context, d time.Duration) error { return ctx.Err() })
	return r
}

func newTestController(t *testing.T, words []string, existing map[string]struct{}, uploader *fakeUploader) *Controller {
	t.Helper()
	c, err := New(Config{
		ProfileID: "p1",
		Words:     words,
		Existing:  existing,
		Recorder:  newTestRecorder(),
		Uploader:  uploader,
	})
	require.NoError(t, err)
	return c
}

func TestEmptyWordListRejected(t *testing.T) {
	_, err := New(Config{
		ProfileID: "p1",
		Recorder:  newTestRecorder(),
		Uploader:  &fakeUploader{},
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestSessionEndToEnd(t *testing.T) {
	// "cat" is new, "dog" already exists remotely.
	uploader := &fakeUploader{}
	completed := false

	c, err := New(Config{
		ProfileID:  "p1",
		Words:      []string{"cat", "dog"},
		Existing:   map[string]struct{}{"dog": {}},
		Recorder:   newTestRecorder(),
		Uploader:   uploader,
		OnComplete: func() { completed = true },
	})
	require.NoError(t, err)

	require.NoError(t, c.Start())
	assert.Zero(t, c.Progress())

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "cat", cur.Text)
	assert.False(t, cur.ExistsRemotely)

	// New word goes straight to upload, never through confirmation.
	ctx := context.Background()
	require.NoError(t, c.Record(ctx))
	require.NoError(t, c.Save(ctx))

	require.Len(t, uploader.calls, 1)
	assert.Equal(t, "cat", uploader.calls[0].Word)
	assert.False(t, uploader.calls[0].Overwrite)
	assert.Equal(t, []byte("RIFFdata"), uploader.calls[0].Audio)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)

	// Existing word stops at the confirmation step.
	cur, ok = c.Current()
	require.True(t, ok)
	assert.Equal(t, "dog", cur.Text)
	assert.True(t, cur.ExistsRemotely)

	require.NoError(t, c.Record(ctx))
	require.NoError(t, c.Save(ctx))
	require.Len(t, uploader.calls, 1, "save must not upload before confirmation")

	require.NoError(t, c.ConfirmOverwrite(ctx))
	require.Len(t, uploader.calls, 2)
	assert.True(t, uploader.calls[1].Overwrite)

	assert.True(t, c.Done())
	assert.True(t, completed)
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)

	words := c.Words()
	assert.True(t, words[0].Recorded)
	assert.True(t, words[1].Recorded)
}

func TestDeclineOverwriteAdvancesUnrecorded(t *testing.T) {
	uploader := &fakeUploader{}
	c := newTestController(t, []string{"chào", "bạn"}, map[string]struct{}{"chào": {}}, uploader)

	ctx := context.Background()
	require.NoError(t, c.Start())
	require.NoError(t, c.Record(ctx))
	require.NoError(t, c.Save(ctx))
	require.NoError(t, c.DeclineOverwrite())

	assert.Empty(t, uploader.calls)
	assert.False(t, c.Words()[0].Recorded)

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "bạn", cur.Text)
}

func TestServerConflictRoutesToConfirmation(t *testing.T) {
	// The snapshot said the word was new, but the server disagrees.
	uploader := &fakeUploader{results: []func(string) (*library.UploadResult, error){conflict(), ok()}}
	c := newTestController(t, []string{"chào"}, nil, uploader)

	ctx := context.Background()
	require.NoError(t, c.Start())
	require.NoError(t, c.Record(ctx))
	require.NoError(t, c.Save(ctx))

	assert.True(t, c.Words()[0].ExistsRemotely)
	assert.False(t, c.Words()[0].Recorded)

	require.NoError(t, c.ConfirmOverwrite(ctx))
	require.Len(t, uploader.calls, 2)
	assert.False(t, uploader.calls[0].Overwrite)
	assert.True(t, uploader.calls[1].Overwrite)
	assert.True(t, c.Done())
}

func TestUploadFailureRetainsBufferAndRetries(t *testing.T) {
	uploader := &fakeUploader{results: []func(string) (*library.UploadResult, error){
		fail(errors.UploadTimeoutError("chào", "30s")),
		ok(),
	}}
	c := newTestController(t, []string{"chào"}, nil, uploader)

	ctx := context.Background()
	require.NoError(t, c.Start())
	require.NoError(t, c.Record(ctx))

	err := c.Save(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUploadTimeout, errors.GetCode(err))
	assert.False(t, c.Done(), "a failed upload must not advance the session")

	// Retry without re-recording: same buffer, fresh idempotency key.
	require.NoError(t, c.Save(ctx))
	require.Len(t, uploader.calls, 2)
	assert.Equal(t, uploader.calls[0].Audio, uploader.calls[1].Audio)
	assert.NotEqual(t, uploader.calls[0].Key, uploader.calls[1].Key)
	assert.True(t, c.Done())
}

func TestIdempotencyKeysUniquePerAttempt(t *testing.T) {
	uploader := &fakeUploader{}
	c := newTestController(t, []string{"một", "hai"}, nil, uploader)

	ctx := context.Background()
	require.NoError(t, c.Start())
	require.NoError(t, c.Record(ctx))
	require.NoError(t, c.Save(ctx))
	require.NoError(t, c.Record(ctx))
	require.NoError(t, c.Save(ctx))

	require.Len(t, uploader.calls, 2)
	assert.NotEmpty(t, uploader.calls[0].Key)
	assert.NotEqual(t, uploader.calls[0].Key, uploader.calls[1].Key)
}

func TestStaleUploadResponseDiscarded(t *testing.T) {
	// The user aborts while the upload is in flight; its late result
	// must not mutate the discarded session.
	var c *Controller
	uploader := &fakeUploader{results: []func(string) (*library.UploadResult, error){
		func(word string) (*library.UploadResult, error) {
			c.Abort()
			return &library.UploadResult{Status: library.UploadOK, Word: word}, nil
		},
	}}
	c = newTestController(t, []string{"chào"}, nil, uploader)

	ctx := context.Background()
	require.NoError(t, c.Start())
	require.NoError(t, c.Record(ctx))
	require.NoError(t, c.Save(ctx))

	assert.True(t, c.Aborted())
	assert.False(t, c.Words()[0].Recorded)
	assert.InDelta(t, 0.0, c.Progress(), 1e-9)
}

func TestSkipAdvancesWithoutUpload(t *testing.T) {
	uploader := &fakeUploader{}
	c := newTestController(t, []string{"một", "hai"}, nil, uploader)

	require.NoError(t, c.Start())
	require.NoError(t, c.Skip())

	assert.Empty(t, uploader.calls)
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "hai", cur.Text)
}

func TestAbortDiscardsSession(t *testing.T) {
	c := newTestController(t, []string{"một"}, nil, &fakeUploader{})

	require.NoError(t, c.Start())
	c.Abort()

	assert.True(t, c.Aborted())
	assert.True(t, c.Done())

	_, ok := c.Current()
	assert.False(t, ok)

	err := c.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))
}

func TestStartTwiceRejected(t *testing.T) {
	c := newTestController(t, []string{"một"}, nil, &fakeUploader{})

	require.NoError(t, c.Start())
	require.Error(t, c.Start())
}

func TestSaveBeforeCaptureRejected(t *testing.T) {
	c := newTestController(t, []string{"một"}, nil, &fakeUploader{})

	require.NoError(t, c.Start())
	err := c.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetCode(err))
}
