// Package extract loads paginated documents and snapshots their per-page text.
// PDF files are read with the ledongthuc/pdf library; extraction failures are
// confined to the page they occur on so a single bad page never aborts a run.
package extract

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// PageText is the extracted text of a single page. Number is 1-based.
// If extraction failed for the page, Err is set and Text is empty; callers
// treat such pages as blank or illegible depending on the consumer.
type PageText struct {
	Number int
	Text   string
	Err    error
}

// Document is an immutable snapshot of a loaded document: its identifier and
// the ordered per-page extracted text. It is created once per run and handed
// to every verification check as a read-only view.
type Document struct {
	Path       string
	TotalPages int
	Pages      []PageText
}

// Name returns the document's base file name.
func (d *Document) Name() string {
	if i := strings.LastIndexByte(d.Path, '/'); i >= 0 {
		return d.Path[i+1:]
	}
	return d.Path
}

// LoadError indicates the document itself could not be opened or parsed.
// It is fatal for the run: no checks execute against an unloadable document.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading document %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is (or wraps) a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Extractor produces a Document snapshot from a file path.
type Extractor interface {
	Extract(path string) (*Document, error)
}

// Open loads the document at path with the default PDF extractor.
func Open(path string) (*Document, error) {
	return NewPDFExtractor().Extract(path)
}

// statError converts a missing or unreadable file into a LoadError before the
// PDF parser ever sees it, so the error message names the real cause.
func statError(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &LoadError{Path: path, Err: errors.New("is a directory")}
	}
	return nil
}
