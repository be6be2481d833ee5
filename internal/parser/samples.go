package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

const (
	// MaxSampleLineLength bounds a single sample line
	MaxSampleLineLength = 1024 * 1024
)

// SampleReader reads test samples, one per line
type SampleReader struct {
	fs afero.Fs
}

// NewSampleReader creates a sample reader on the given filesystem
func NewSampleReader(fs afero.Fs) *SampleReader {
	return &SampleReader{fs: fs}
}

// ReadFile returns the lines of the file at path. "-" is not special here;
// callers pass stdin to Read instead.
func (sr *SampleReader) ReadFile(path string) ([]string, error) {
	file, err := sr.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer file.Close()

	samples, err := sr.Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample file %s: %w", path, err)
	}
	return samples, nil
}

// Read returns the lines of r with line terminators stripped
func (sr *SampleReader) Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxSampleLineLength)

	samples := make([]string, 0)
	for scanner.Scan() {
		samples = append(samples, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
