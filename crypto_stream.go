package go_symcrypt

import (
	"errors"
	"io"
)

// streamChunk is the read size used by a CryptoStream in read mode.
const streamChunk = 4096

// CryptoStream links a CryptoTransform to an io.Writer or io.Reader.
//
// In write mode, data written to the stream is transformed in whole input
// blocks and passed on; the tail is kept until FlushFinalBlock or Close. In
// read mode, data is pulled from the source, transformed, and the final block
// is produced when the source reports io.EOF.
type CryptoStream struct {
	t       CryptoTransform
	w       io.Writer
	r       io.Reader
	pending []byte
	out     []byte
	flushed bool
}

// NewCryptoStream returns a CryptoStream in write mode.
func NewCryptoStream(w io.Writer, t CryptoTransform) *CryptoStream {
	return &CryptoStream{t: t, w: w}
}

// NewCryptoReader returns a CryptoStream in read mode.
func NewCryptoReader(r io.Reader, t CryptoTransform) *CryptoStream {
	return &CryptoStream{t: t, r: r}
}

// HasFlushedFinalBlock reports whether the final block has been produced.
func (s *CryptoStream) HasFlushedFinalBlock() bool { return s.flushed }

// Write transforms every complete input block available and writes the
// result to the underlying writer.
func (s *CryptoStream) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, argError(ErrInvalidMode, "stream is not writable")
	}
	if s.flushed {
		return 0, argError(ErrFinalBlockFlushed, "write")
	}
	s.pending = append(s.pending, p...)
	if err := s.drain(s.w.Write); err != nil {
		return 0, err
	}
	return len(p), nil
}

// drain runs the aligned part of pending through TransformBlock and hands the
// output to emit.
func (s *CryptoStream) drain(emit func([]byte) (int, error)) error {
	in := s.t.InputBlockSize()
	aligned := len(s.pending) - len(s.pending)%in
	if aligned == 0 {
		return nil
	}
	size := aligned / in * s.t.OutputBlockSize()
	buf := globalBufferPool.GetBuffer(size)[:size]
	defer globalBufferPool.PutBuffer(buf)

	n, err := s.t.TransformBlock(s.pending, 0, aligned, buf, 0)
	if err != nil {
		return err
	}
	rest := copy(s.pending, s.pending[aligned:])
	clear(s.pending[rest:])
	s.pending = s.pending[:rest]
	if n == 0 {
		return nil
	}
	_, err = emit(buf[:n])
	return err
}

// FlushFinalBlock transforms the buffered tail with TransformFinalBlock and
// writes it out. It may be called once; a second call fails with
// ErrFinalBlockFlushed.
func (s *CryptoStream) FlushFinalBlock() error {
	if s.w == nil {
		return argError(ErrInvalidMode, "stream is not writable")
	}
	if s.flushed {
		return argError(ErrFinalBlockFlushed, "flush")
	}
	final, err := s.t.TransformFinalBlock(s.pending, 0, len(s.pending))
	if err != nil {
		return err
	}
	clear(s.pending)
	s.pending = nil
	s.flushed = true
	if len(final) == 0 {
		return nil
	}
	_, err = s.w.Write(final)
	return err
}

// Read returns transformed data from the underlying reader. Padding errors on
// the final block are reported by the Read that reaches io.EOF.
func (s *CryptoStream) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, argError(ErrInvalidMode, "stream is not readable")
	}
	for len(s.out) == 0 {
		if s.flushed {
			return 0, io.EOF
		}
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

func (s *CryptoStream) fill() error {
	chunk := globalBufferPool.GetBuffer(streamChunk)[:streamChunk]
	defer globalBufferPool.PutBuffer(chunk)

	n, err := s.r.Read(chunk)
	s.pending = append(s.pending, chunk[:n]...)
	switch {
	case errors.Is(err, io.EOF):
		final, ferr := s.t.TransformFinalBlock(s.pending, 0, len(s.pending))
		if ferr != nil {
			return ferr
		}
		clear(s.pending)
		s.pending = nil
		s.flushed = true
		s.out = append(s.out, final...)
		return nil
	case err != nil:
		return err
	}
	return s.drain(func(b []byte) (int, error) {
		s.out = append(s.out, b...)
		return len(b), nil
	})
}

// Close flushes the final block in write mode if that has not happened yet,
// then clears the transform. The underlying writer or reader is not closed.
func (s *CryptoStream) Close() error {
	var err error
	if s.w != nil && !s.flushed {
		err = s.FlushFinalBlock()
	}
	clear(s.pending)
	s.pending = nil
	s.t.Clear()
	return err
}
