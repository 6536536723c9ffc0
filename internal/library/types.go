package library

import "time"

// Record is one remote vocabulary entry.
type Record struct {
	ID        uint      `json:"id"`
	Word      string    `json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one page of vocabulary records plus the out-of-band total
// carried in the X-Total-Count response header.
type Page struct {
	Records []Record
	Total   int
}

// UploadStatus tags the outcome of an upload. The remote "word already
// exists" answer is expected control flow, not a failure, so it gets its
// own tag instead of an error.
type UploadStatus int

const (
	UploadOK UploadStatus = iota
	UploadConflict
	UploadFailed
)

// UploadResult is the tagged outcome of an upload request.
type UploadResult struct {
	Status UploadStatus
	Word   string
	Record *Record
}

// SyncReport is the server's account of reconciling its audio files
// against its vocabulary records.
type SyncReport struct {
	Message        string   `json:"message"`
	TotalFiles     int      `json:"total_files"`
	UniqueFiles    int      `json:"unique_files"`
	DuplicateFiles int      `json:"duplicate_files"`
	TotalRecords   int      `json:"total_records"`
	AddedRecords   []string `json:"added_records"`
	MissingFiles   []string `json:"missing_files"`
}

// errorBody is the JSON error payload the vocabulary server returns.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

// uploadResponse is the wire shape of a vocabulary POST response. The
// exists flag signals a conflict when overwrite was false.
type uploadResponse struct {
	Exists    bool      `json:"exists"`
	ID        uint      `json:"id"`
	Word      string    `json:"word"`
	CreatedAt time.Time `json:"created_at"`
}
