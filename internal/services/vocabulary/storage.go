package vocabulary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemStore implements AudioStore on the local filesystem. Each
// profile gets a subdirectory under basePath; files are named after the
// word with whitespace replaced by underscores plus a .wav extension.
type FilesystemStore struct {
	basePath string
}

// NewFilesystemStore creates the audio storage root if needed.
func NewFilesystemStore(basePath string) (*FilesystemStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio storage directory: %w", err)
	}
	return &FilesystemStore{basePath: basePath}, nil
}

// FileNameForWord maps a word to its stored file name.
func FileNameForWord(word string) string {
	return strings.Join(strings.Fields(word), "_") + ".wav"
}

// WordForFileName inverts FileNameForWord.
func WordForFileName(fileName string) string {
	word := strings.TrimSuffix(fileName, ".wav")
	return strings.ReplaceAll(word, "_", " ")
}

func (fs *FilesystemStore) profileDir(profileID string) string {
	return filepath.Join(fs.basePath, profileID)
}

// Save writes the audio bytes and returns the stored size.
func (fs *FilesystemStore) Save(profileID, fileName string, data []byte) (int64, error) {
	dir := fs.profileDir(profileID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create profile directory: %w", err)
	}

	fullPath := filepath.Join(dir, fileName)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write audio file: %w", err)
	}
	return int64(len(data)), nil
}

// Read returns the stored audio bytes.
func (fs *FilesystemStore) Read(profileID, fileName string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(fs.profileDir(profileID), fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return data, nil
}

// Delete removes the stored file. Missing files are not an error.
func (fs *FilesystemStore) Delete(profileID, fileName string) error {
	err := os.Remove(filepath.Join(fs.profileDir(profileID), fileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete audio file: %w", err)
	}
	return nil
}

// ListFiles returns the profile's stored .wav file names in lexical
// order. A profile with no directory yet has no files.
func (fs *FilesystemStore) ListFiles(profileID string) ([]string, error) {
	entries, err := os.ReadDir(fs.profileDir(profileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list audio files: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wav") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
