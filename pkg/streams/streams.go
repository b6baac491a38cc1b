// Package streams implements the interpreter's I/O capability: byte and
// decimal-integer input parsing, plus an output sink. Two concrete
// implementations are provided - StdIO for the `run` command's standard
// streams, and BufferIO for tests. The Virtual Terminal implements IO
// itself, reusing TryReadNumber from this package.
package streams

import (
	"bufio"
	"io"
)

// IO is the capability the interpreter reads input from and writes
// output to. read_byte/read_number return ok=false ("Waiting") rather
// than erroring when no data is currently available; that is not a
// failure, it is backpressure.
type IO interface {
	ReadByte() (b byte, ok bool)
	ReadNumber() (n byte, ok bool)
	Write(buf []byte) (int, error)
}

// shiftMax bounds accumulation: once the running value exceeds it,
// multiplying by 10 would already exceed 255.
const shiftMax = 25

// tryCombine folds one more decimal digit into old, returning false if
// doing so would overflow a byte.
func tryCombine(old, digit byte) (byte, bool) {
	if old > shiftMax {
		return 0, false
	}
	value := old * 10
	remaining := byte(255) - value
	if digit > remaining {
		return 0, false
	}
	return value + digit, true
}

// baseNumber scans bytes, discarding non-digits, until it finds the
// first digit. It returns the 1-based offset just past that digit and
// its value, or (skippable, false) if no digit exists in buf at all -
// skippable is the count of bytes that may be discarded as noise.
func baseNumber(buf []byte) (offset int, value byte, ok bool) {
	for i, b := range buf {
		if b >= '0' && b <= '9' {
			return i + 1, b - '0', true
		}
	}
	return len(buf), 0, false
}

// TryReadNumber implements the §4.4 read_number contract: skip
// non-digit bytes, then accumulate consecutive digits using
// tryCombine's overflow rule. Returns (offset, value, true) on success
// where offset is the count of bytes consumed (the terminator is NOT
// consumed); returns (skippable, 0, false) when the buffer runs out
// before a terminator is seen, in which case the caller must not
// consume anything - more input may still complete the number.
func TryReadNumber(buf []byte) (offset int, value byte, ok bool) {
	start, num, found := baseNumber(buf)
	if !found {
		return start, 0, false
	}
	skippable := start - 1
	offset = start
	for i := start; i < len(buf); i++ {
		b := buf[i]
		if b < '0' || b > '9' {
			return offset, num, true
		}
		digit := b - '0'
		if combined, ok := tryCombine(num, digit); ok {
			offset = i + 1
			num = combined
		} else {
			return offset, num, true
		}
	}
	return skippable, 0, false
}

// StdIO reads from a line-buffered standard input abstraction with a
// small fixed-size scratch buffer and writes to the given writer.
type StdIO struct {
	in     *bufio.Reader
	out    io.Writer
	buf    [32]byte
	offset int
	length int
}

// NewStdIO wraps in/out for use as an IO capability.
func NewStdIO(in io.Reader, out io.Writer) *StdIO {
	return &StdIO{in: bufio.NewReader(in), out: out}
}

func (s *StdIO) isEmpty() bool { return s.length == 0 }

func (s *StdIO) fill() int {
	var n int
	var err error
	if s.length == 0 {
		n, err = s.in.Read(s.buf[:])
		s.offset = 0
	} else {
		n, err = s.in.Read(s.buf[s.offset+s.length:])
	}
	if err != nil && n == 0 {
		return 0
	}
	s.length += n
	return n
}

func (s *StdIO) skipAndShift(skip int) {
	start := s.offset + skip
	end := s.offset + s.length
	if start != end {
		copy(s.buf[:end-start], s.buf[start:end])
	}
	s.offset = 0
	s.length -= skip
}

func (s *StdIO) bytes() []byte {
	return s.buf[s.offset : s.offset+s.length]
}

func (s *StdIO) ReadByte() (byte, bool) {
	if s.isEmpty() {
		if s.fill() == 0 {
			return 0, false
		}
	}
	v := s.buf[s.offset]
	s.offset++
	s.length--
	return v, true
}

func (s *StdIO) ReadNumber() (byte, bool) {
	if s.isEmpty() {
		if s.fill() == 0 {
			return 0, false
		}
	}
	for {
		offset, num, ok := TryReadNumber(s.bytes())
		if ok {
			s.skipAndShift(offset)
			return num, true
		}
		s.skipAndShift(offset)
		if s.fill() == 0 {
			return 0, false
		}
	}
}

func (s *StdIO) Write(buf []byte) (int, error) {
	return s.out.Write(buf)
}

// BufferIO is an in-memory IO capability backed by a byte deque for
// input and a growable byte slice for output - used by tests and
// anywhere input is already fully materialized.
type BufferIO struct {
	input  []byte
	Output []byte
}

// NewBufferIO returns an empty BufferIO.
func NewBufferIO() *BufferIO {
	return &BufferIO{}
}

// WriteInput appends bytes to the input deque, to be consumed later by
// ReadByte/ReadNumber.
func (b *BufferIO) WriteInput(input []byte) {
	b.input = append(b.input, input...)
}

func (b *BufferIO) ReadByte() (byte, bool) {
	if len(b.input) == 0 {
		return 0, false
	}
	v := b.input[0]
	b.input = b.input[1:]
	return v, true
}

func (b *BufferIO) ReadNumber() (byte, bool) {
	offset, num, ok := TryReadNumber(b.input)
	if !ok {
		return 0, false
	}
	b.input = b.input[offset:]
	return num, true
}

func (b *BufferIO) Write(buf []byte) (int, error) {
	b.Output = append(b.Output, buf...)
	return len(buf), nil
}
