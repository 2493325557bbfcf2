package roff

import (
	"bufio"
	"os"

	"github.com/signadot/roff-format/go-roff/parse"
)

// File is a lazy parser which owns the file it reads.
type File struct {
	*parse.Parser
	name string
	f    *os.File
}

// OpenFile opens path for lazy reading. The caller must Close the result.
func OpenFile(path string, opts ...parse.ParseOption) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p, err := parse.NewParser(bufio.NewReader(f), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{Parser: p, name: path, f: f}, nil
}

// Name is the path the file was opened with.
func (f *File) Name() string { return f.name }

// Close ends the traversal and releases the file. It may be called more
// than once.
func (f *File) Close() error {
	f.Parser.Close()
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

// WithFile opens path, calls fn with its parser and closes the file when fn
// returns or panics.
func WithFile(path string, fn func(*parse.Parser) error, opts ...parse.ParseOption) (err error) {
	f, err := OpenFile(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f.Parser)
}
