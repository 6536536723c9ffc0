// Package library is the HTTP client for the remote vocabulary API: the
// voice-library store of (profile, word) -> audio asset mappings.
package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/vietvoice/voicebank/pkg/errors"
)

// Client handles communication with the vocabulary API.
type Client struct {
	httpClient    *http.Client
	uploadClient  *http.Client
	baseURL       string
	userID        string
	pageLimit     int
	uploadTimeout time.Duration
}

// Config holds configuration for the vocabulary client.
type Config struct {
	BaseURL string
	UserID  string

	// Timeout bounds listing, delete and audio fetches.
	Timeout time.Duration

	// UploadTimeout bounds uploads and sync, which may be slow because
	// the server post-processes audio before answering.
	UploadTimeout time.Duration

	// PageLimit is the page size used for the one-shot existence check.
	PageLimit int
}

// NewClient creates a new vocabulary API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 30 * time.Second
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 1000
	}

	return &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		uploadClient:  &http.Client{Timeout: cfg.UploadTimeout},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		userID:        cfg.UserID,
		pageLimit:     cfg.PageLimit,
		uploadTimeout: cfg.UploadTimeout,
	}
}

func (c *Client) vocabularyURL(profileID string, extra ...string) string {
	parts := append([]string{c.baseURL, "profiles", url.PathEscape(profileID), "vocabulary"}, extra...)
	return strings.Join(parts, "/")
}

func (c *Client) withUser(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if c.userID != "" {
		params.Set("user_id", c.userID)
	}
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

// ListVocabulary fetches one page of the profile's vocabulary. The total
// record count arrives out-of-band in the X-Total-Count header.
func (c *Client) ListVocabulary(ctx context.Context, profileID string, skip, limit int) (*Page, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))
	endpoint := c.withUser(c.vocabularyURL(profileID), params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ReconciliationError(readErrorDetail(resp), nil).
			WithDetail("status", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	total, _ := strconv.Atoi(resp.Header.Get("X-Total-Count"))
	return &Page{Records: records, Total: total}, nil
}

// CheckExisting returns the lowercase set of words already present in
// the profile's remote vocabulary. It issues a single request with a
// high page size instead of paging; this snapshot is the session's one
// source of truth for word existence.
func (c *Client) CheckExisting(ctx context.Context, profileID string) (map[string]struct{}, error) {
	page, err := c.ListVocabulary(ctx, profileID, 0, c.pageLimit)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeReconciliation) {
			return nil, err
		}
		return nil, apperrors.ReconciliationError("could not fetch existing vocabulary", err)
	}

	existing := make(map[string]struct{}, len(page.Records))
	for _, rec := range page.Records {
		existing[strings.ToLower(rec.Word)] = struct{}{}
	}
	return existing, nil
}

// Upload posts one word's audio as multipart form data. The outcome is
// a tagged result: OK, Conflict (word exists and overwrite was false),
// or an error for real failures. Timeouts are reported as
// UPLOAD_TIMEOUT so the caller keeps the buffer and offers a retry.
// The idempotency key covers one (session, word, attempt) so a
// duplicated network retry cannot create a duplicate remote mutation.
func (c *Client) Upload(ctx context.Context, profileID, word string, audio []byte, overwrite bool, idempotencyKey string) (*UploadResult, error) {
	if word == "" {
		return nil, apperrors.MissingFieldError("word")
	}
	if len(audio) == 0 {
		return nil, apperrors.EmptyRecording(word)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("word", word); err != nil {
		return nil, fmt.Errorf("writing form field: %w", err)
	}
	if err := mw.WriteField("overwrite", strconv.FormatBool(overwrite)); err != nil {
		return nil, fmt.Errorf("writing form field: %w", err)
	}

	fileName := strings.ReplaceAll(word, " ", "_") + ".wav"
	part, err := mw.CreateFormFile("audio_file", fileName)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("writing audio payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	endpoint := c.withUser(c.vocabularyURL(profileID), nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apperrors.UploadTimeoutError(word, c.uploadTimeout.String())
		}
		return nil, apperrors.UploadError(word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrors.UploadError(word, fmt.Errorf("server returned status %d: %s", resp.StatusCode, readErrorDetail(resp)))
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, apperrors.UploadError(word, fmt.Errorf("decoding response: %w", err))
	}

	if ur.Exists {
		return &UploadResult{Status: UploadConflict, Word: word}, nil
	}

	rec := Record{ID: ur.ID, Word: ur.Word, CreatedAt: ur.CreatedAt}
	if rec.Word == "" {
		rec.Word = word
	}
	return &UploadResult{Status: UploadOK, Word: word, Record: &rec}, nil
}

// Delete removes one word and its audio asset from the profile.
func (c *Client) Delete(ctx context.Context, profileID, word string) error {
	payload, err := json.Marshal(map[string]string{"word": word})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	endpoint := c.withUser(c.vocabularyURL(profileID), nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete failed with status %d: %s", resp.StatusCode, readErrorDetail(resp))
	}
	return nil
}

// Audio fetches the raw audio bytes stored for a word.
func (c *Client) Audio(ctx context.Context, profileID, word string) ([]byte, error) {
	endpoint := c.withUser(c.vocabularyURL(profileID, url.PathEscape(word), "audio"), nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("vocabulary audio", word)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio fetch failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Sync asks the server to reconcile its audio-file storage against its
// vocabulary records. Idempotent and safe to repeat; on failure the
// caller must not assume vocabulary state changed.
func (c *Client) Sync(ctx context.Context, profileID string) (*SyncReport, error) {
	endpoint := c.withUser(strings.Join([]string{c.baseURL, "profiles", url.PathEscape(profileID), "sync-vocabulary"}, "/"), nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("{}"))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, apperrors.ReconciliationError("", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ReconciliationError(readErrorDetail(resp), nil).
			WithDetail("status", resp.StatusCode)
	}

	var report SyncReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, apperrors.ReconciliationError("could not decode sync report", err)
	}
	return &report, nil
}

// readErrorDetail pulls the server-supplied detail message out of an
// error response body, falling back to the raw text.
func readErrorDetail(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		if msg := eb.text(); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(raw))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
