package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUInt32RoundTrip(t *testing.T) {
	buff := ConvertUInt4Bytes(0xDEADBEEF)
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buff)
	assert.Equal(t, uint32(0xDEADBEEF), ReadUInt32(buff))
}

func TestUInt16RoundTrip(t *testing.T) {
	buff := ConvertUInt2Bytes(0x0FF0)
	assert.Equal(t, []byte{0xF0, 0x0F}, buff)
	assert.Equal(t, uint16(0x0FF0), ReadUInt16(buff))
}

func TestWriteInPlace(t *testing.T) {
	buff := make([]byte, 8)
	WriteUInt32(buff[0:4], 4096)
	WriteUInt16(buff[4:6], 4080)
	assert.Equal(t, uint32(4096), ReadUInt32(buff[0:4]))
	assert.Equal(t, uint16(4080), ReadUInt16(buff[4:6]))
}
