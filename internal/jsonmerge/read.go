package jsonmerge

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrRead matches any *ReadError.
	ErrRead = errors.New("reading JSON file")
	// ErrParse matches any *ParseError.
	ErrParse = errors.New("parsing JSON file")
)

// ReadError reports a file that could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrRead }

// ParseError reports a file whose content is not exactly one JSON value.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReadFile decodes the JSON document stored at path. Numbers are kept as
// json.Number so integers of any size survive the round trip.
func ReadFile(path string) (any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	decoder := json.NewDecoder(bufio.NewReader(file))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, classify(path, err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after JSON value")
		}
		return nil, classify(path, err)
	}
	return value, nil
}

// classify separates failures of the underlying file, which the decoder passes
// through untouched as *os.PathError, from malformed content.
func classify(path string, err error) error {
	var pathErr *os.PathError
	switch {
	case errors.As(err, &pathErr):
		return &ReadError{Path: path, Err: err}
	case err == io.EOF:
		return &ParseError{Path: path, Err: io.ErrUnexpectedEOF}
	default:
		return &ParseError{Path: path, Err: err}
	}
}
