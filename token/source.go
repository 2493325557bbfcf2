package token

import (
	"bufio"
	"bytes"
	"io"
)

// source is a buffered byte reader which counts consumed bytes.
type source struct {
	r   *bufio.Reader
	off int64
}

func newSource(r io.Reader) *source {
	if br, ok := r.(*bufio.Reader); ok {
		return &source{r: br}
	}
	return &source{r: bufio.NewReader(r)}
}

func (s *source) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err == nil {
		s.off++
	}
	return b, err
}

func (s *source) unreadByte() {
	if s.r.UnreadByte() == nil {
		s.off--
	}
}

func (s *source) peekByte() (byte, error) {
	d, err := s.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return d[0], nil
}

func (s *source) peek(n int) ([]byte, error) {
	return s.r.Peek(n)
}

// readFull reads exactly n bytes. On a short read it returns what was read
// and io.ErrUnexpectedEOF (or io.EOF if nothing was read).
func (s *source) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	m, err := io.ReadFull(s.r, buf)
	s.off += int64(m)
	return buf[:m], err
}

// readSpan reads up to n bytes without trusting n for preallocation.
func (s *source) readSpan(n int64) ([]byte, error) {
	var buf bytes.Buffer
	m, err := io.CopyN(&buf, s.r, n)
	s.off += m
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return buf.Bytes(), err
}

// readThrough reads up to and including delim, returning the bytes before
// it. If the input ends first, it returns the bytes read and io.EOF.
func (s *source) readThrough(delim byte) ([]byte, error) {
	d, err := s.r.ReadBytes(delim)
	s.off += int64(len(d))
	if err != nil {
		return d, err
	}
	return d[:len(d)-1], nil
}
