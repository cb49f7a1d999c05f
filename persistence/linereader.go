package persistence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spacemeshos/bits/shared"
)

// LineReader reads input lines from a file, one message per line. Blank
// lines are skipped.
type LineReader struct {
	file *os.File
	buf  *bufio.Reader
	line int
}

func NewLineReader(name string) (*LineReader, error) {
	file, err := os.OpenFile(name, os.O_RDONLY, shared.OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for line reader: %w", err)
	}

	return &LineReader{
		file: file,
		buf:  bufio.NewReader(file),
	}, nil
}

// ReadNext returns the next non-blank line with surrounding whitespace
// removed, or io.EOF once the file is exhausted.
func (r *LineReader) ReadNext() (string, error) {
	for {
		line, err := r.buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		if line == "" && err == io.EOF {
			return "", io.EOF
		}
		r.line++

		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// Line returns the 1-based file line number of the last line read.
func (r *LineReader) Line() int {
	return r.line
}

func (r *LineReader) Close() error {
	r.buf = nil
	return r.file.Close()
}

// ReadLines returns all non-blank lines of the named file.
func ReadLines(name string) ([]string, error) {
	r, err := NewLineReader(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var lines []string
	for {
		line, err := r.ReadNext()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}
