// Package wordlist turns free text into the canonical ordered word
// sequence used by recording sessions and concatenative playback.
package wordlist

import (
	"strings"

	"github.com/vietvoice/voicebank/pkg/errors"
)

// punctuation marks that are split off as their own tokens when
// SplitPunctuation is enabled. Matches the playback tokenizer so a
// recorded library lines up with synthesis requests.
var punctuation = []string{",", ".", "?", "!", ":", ";"}

// Options controls tokenization behavior.
type Options struct {
	// SplitPunctuation inserts a space before each punctuation mark so
	// trailing punctuation does not fuse with the preceding token.
	SplitPunctuation bool
}

// Build converts raw text into a lowercase, whitespace-split word list
// with case-insensitive first-seen deduplication. It is a pure function
// of its input. An empty result is an INVALID_INPUT error; callers must
// not start a session on it.
func Build(text string, opts Options) ([]string, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if opts.SplitPunctuation {
		for _, p := range punctuation {
			normalized = strings.ReplaceAll(normalized, p, " "+p)
		}
	}

	fields := strings.Fields(normalized)

	seen := make(map[string]struct{}, len(fields))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	if len(words) == 0 {
		return nil, errors.InvalidInput("no words found in input text")
	}

	return words, nil
}

// Tokenize splits text like Build but keeps duplicates in order. Used by
// playback, where every occurrence of a word is spoken.
func Tokenize(text string, opts Options) ([]string, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if opts.SplitPunctuation {
		for _, p := range punctuation {
			normalized = strings.ReplaceAll(normalized, p, " "+p)
		}
	}

	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return nil, errors.InvalidInput("no words found in input text")
	}

	return fields, nil
}

// Classify partitions words by membership in the existing set. Order is
// preserved within each partition.
func Classify(words []string, existing map[string]struct{}) (fresh, present []string) {
	for _, w := range words {
		if _, ok := existing[strings.ToLower(w)]; ok {
			present = append(present, w)
		} else {
			fresh = append(fresh, w)
		}
	}
	return fresh, present
}
