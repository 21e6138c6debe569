// Package source reads event titles from files, one title per line.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Title is one event title read from a file.
type Title struct {
	// Text is the raw title line with surrounding whitespace trimmed.
	Text string

	// Source is the file the title came from.
	Source string

	// LineNum is the 1-based line number within the file.
	LineNum int
}

// TitleSource provides an iterator over event titles.
// Implementations must be safe for sequential access (not concurrent).
type TitleSource interface {
	// Next returns the next title.
	// Returns io.EOF when no more titles are available.
	// Blank lines and comment lines are skipped.
	Next(ctx context.Context) (*Title, error)

	// Close releases any resources held by the source.
	Close() error
}

// FileSource implements TitleSource for reading from title files.
// Blank lines and lines starting with # are skipped.
type FileSource struct {
	files []string

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates a TitleSource that reads from the given files
// in order.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		fileIndex: -1,
	}
}

// Next returns the next title.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Title, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Ensure we have a file open
		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		// Try to read the next line
		if s.currentScanner.Scan() {
			s.currentLine++
			line := strings.TrimSpace(s.currentScanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			return &Title{
				Text:    line,
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}

		// Check for scanner error
		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening title file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}
