package streams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryReadNumber(t *testing.T) {
	cases := []struct {
		input  string
		offset int
		value  byte
		ok     bool
	}{
		{"alice bob charlie23562347", 20, 235, true},
		{"@#$@%^$#%^%^3a", 13, 3, true},
		{"a66$", 3, 66, true},
		{"1 ", 1, 1, true},
		{"24\n", 2, 24, true},
		{"@#$@%^$#%^%^3", 12, 0, false},
		{"a66", 1, 0, false},
		{"1", 0, 0, false},
		{"11", 0, 0, false},
		{"abcdefg", 7, 0, false},
		{"@#$%@#$*&%^", 11, 0, false},
		{"a b c", 5, 0, false},
	}
	for _, c := range cases {
		offset, value, ok := TryReadNumber([]byte(c.input))
		assert.Equal(t, c.ok, ok, "input %q", c.input)
		assert.Equal(t, c.offset, offset, "input %q", c.input)
		if c.ok {
			assert.Equal(t, c.value, value, "input %q", c.input)
		}
	}
}

func TestBaseNumber(t *testing.T) {
	cases := []struct {
		input  string
		offset int
		value  byte
		ok     bool
	}{
		{"alice bob charlie23562347", 18, 2, true},
		{"@#$@%^$#%^%^3", 13, 3, true},
		{"a66", 2, 6, true},
		{"abcdefg", 7, 0, false},
	}
	for _, c := range cases {
		offset, value, ok := baseNumber([]byte(c.input))
		assert.Equal(t, c.ok, ok, "input %q", c.input)
		assert.Equal(t, c.offset, offset, "input %q", c.input)
		if c.ok {
			assert.Equal(t, c.value, value, "input %q", c.input)
		}
	}
}

func TestTryCombine(t *testing.T) {
	v, ok := tryCombine(1, 1)
	assert.True(t, ok)
	assert.Equal(t, byte(11), v)

	for i := byte(0); i < 24; i++ {
		for j := byte(0); j < 9; j++ {
			v, ok := tryCombine(i, j)
			assert.True(t, ok)
			assert.Equal(t, 10*i+j, v)
		}
	}

	expect := []struct {
		digit byte
		value byte
		ok    bool
	}{
		{0, 250, true}, {1, 251, true}, {2, 252, true}, {3, 253, true},
		{4, 254, true}, {5, 255, true}, {6, 0, false}, {7, 0, false},
		{8, 0, false}, {9, 0, false},
	}
	for _, e := range expect {
		v, ok := tryCombine(25, e.digit)
		assert.Equal(t, e.ok, ok)
		if e.ok {
			assert.Equal(t, e.value, v)
		}
	}

	for i := 26; i <= 255; i++ {
		for j := byte(0); j < 9; j++ {
			_, ok := tryCombine(byte(i), j)
			assert.False(t, ok)
		}
	}
}

func TestBufferIOReadByteAndWrite(t *testing.T) {
	b := NewBufferIO()
	b.WriteInput([]byte("hi"))

	v, ok := b.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte('h'), v)

	v, ok = b.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte('i'), v)

	_, ok = b.ReadByte()
	assert.False(t, ok)

	n, err := b.Write([]byte("out"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("out"), b.Output)
}

func TestBufferIOReadNumberLeavesTerminator(t *testing.T) {
	b := NewBufferIO()
	b.WriteInput([]byte("abc12xyz"))

	n, ok := b.ReadNumber()
	assert.True(t, ok)
	assert.Equal(t, byte(12), n)

	remaining, ok := b.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte('x'), remaining)
}

func TestBufferIOReadNumberWithoutTerminatorConsumesNothing(t *testing.T) {
	b := NewBufferIO()
	b.WriteInput([]byte("12"))

	_, ok := b.ReadNumber()
	assert.False(t, ok)

	v, ok := b.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte('1'), v)
}
