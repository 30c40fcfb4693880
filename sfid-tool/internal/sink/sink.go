// Package sink holds the line-oriented outputs an enumeration run writes to.
// Every sink is safe for concurrent use and writes each line with a single
// locked write, so lines from different workers never interleave.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrClosed is returned by WriteLine after Close.
var ErrClosed = errors.New("sink closed")

// Sink receives one result per line.
type Sink interface {
	// WriteLine appends line followed by a newline.
	WriteLine(line string) error
	// Close flushes buffered output and releases the underlying writer.
	Close() error
}

// Stream writes lines straight to an io.Writer such as stdout.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	buf    []byte
	closed bool
}

// NewStream wraps w. Closing the stream does not close w.
func NewStream(w io.Writer) *Stream {
	return &Stream{w: w}
}

func (s *Stream) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.buf = append(append(s.buf[:0], line...), '\n')
	if _, err := s.w.Write(s.buf); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// File writes lines to a single output file owned for the duration of a run.
type File struct {
	mu     sync.Mutex
	path   string
	f      *os.File
	w      *bufio.Writer
	closed bool
}

const fileBufferSize = 64 * 1024

// CreateFile creates (or truncates) path, making parent directories as needed.
func CreateFile(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	return &File{
		path: path,
		f:    f,
		w:    bufio.NewWriterSize(f, fileBufferSize),
	}, nil
}

// Path returns the file's path as given to CreateFile.
func (s *File) Path() string {
	return s.path
}

func (s *File) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, err := s.w.WriteString(line); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Close flushes and closes the file. Calling it again is a no-op.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	flushErr := s.w.Flush()
	closeErr := s.f.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to flush %s: %w", s.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, closeErr)
	}
	return nil
}
