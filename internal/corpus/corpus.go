// Package corpus loads debug-log documents from a local directory.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the conventional extension for debug-log documents.
const Ext = ".txt"

// ErrMissingDir is returned by Load when the log directory does not exist.
// Callers report it to the operator and produce an empty report; it is not
// treated as fatal.
var ErrMissingDir = errors.New("log directory not found")

// Document is one debug-log file read fully into memory. Immutable once
// read; the text is discarded by callers after extraction.
type Document struct {
	SessionID string
	Path      string
	SizeBytes int64
	Text      string
}

// Load reads every *.txt document under dir in lexical order. Unreadable
// files are reported to warn and skipped so one bad file never aborts the
// run. Invalid UTF-8 sequences are replaced, never fatal. warn may be nil.
func Load(dir string, warn io.Writer) ([]Document, error) {
	if warn == nil {
		warn = io.Discard
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingDir, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var docs []Document
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(warn, "skipping %s: %v\n", path, err)
			continue
		}
		docs = append(docs, Document{
			SessionID: strings.TrimSuffix(e.Name(), Ext),
			Path:      path,
			SizeBytes: int64(len(data)),
			Text:      strings.ToValidUTF8(string(data), "�"),
		})
	}
	return docs, nil
}
