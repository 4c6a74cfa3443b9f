// Package source adapts opaque statement inputs (files, in-memory exports)
// into the text lines the parsers consume. Russian bank exports frequently
// ship as windows-1251; everything is transparently decoded to UTF-8.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Handle is an opaque, reopenable statement input. Name carries the original
// filename when one exists; the PDF detector uses it as a format hint.
type Handle interface {
	Open() (io.ReadCloser, error)
	Name() string
}

// FileHandle is a Handle backed by a file on disk.
type FileHandle struct {
	Path string
}

// Open opens the underlying file.
func (h FileHandle) Open() (io.ReadCloser, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	return f, nil
}

// Name returns the file path.
func (h FileHandle) Name() string {
	return h.Path
}

// BytesHandle is a Handle backed by an in-memory byte slice.
type BytesHandle struct {
	Label string
	Data  []byte
}

// Open returns a reader over the buffered bytes.
func (h BytesHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(h.Data)), nil
}

// Name returns the label supplied by the caller.
func (h BytesHandle) Name() string {
	return h.Label
}

// ReadAll reads the whole input as raw bytes.
func ReadAll(h Handle) ([]byte, error) {
	r, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}

// ReadLines materializes the input as decoded text lines. limit > 0 bounds
// the number of lines read (a peek); limit <= 0 reads everything. The data is
// read once into memory, so callers can validate, count and stream over the
// same snapshot without reopening the source.
func ReadLines(h Handle, limit int) ([]string, error) {
	raw, err := ReadAll(h)
	if err != nil {
		return nil, err
	}
	text := DecodeText(raw)

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading statement lines: %w", err)
	}
	return lines, nil
}

// DecodeText converts raw statement bytes to UTF-8 text. Inputs that are
// already valid UTF-8 pass through untouched (minus a BOM); anything else is
// assumed to be windows-1251.
func DecodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
