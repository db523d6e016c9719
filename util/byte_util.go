package util

import "encoding/binary"

// On-disk integers are little-endian. Every multi-byte field in the page
// format goes through these helpers so the byte order is fixed in one place.

func ConvertUInt2Bytes(value uint16) []byte {
	buff := make([]byte, 2)
	binary.LittleEndian.PutUint16(buff, value)
	return buff
}

func ConvertUInt4Bytes(value uint32) []byte {
	buff := make([]byte, 4)
	binary.LittleEndian.PutUint32(buff, value)
	return buff
}

func ConvertULong8Bytes(value uint64) []byte {
	buff := make([]byte, 8)
	binary.LittleEndian.PutUint64(buff, value)
	return buff
}

func ReadUInt16(buff []byte) uint16 {
	return binary.LittleEndian.Uint16(buff)
}

func ReadUInt32(buff []byte) uint32 {
	return binary.LittleEndian.Uint32(buff)
}

func ReadUInt64(buff []byte) uint64 {
	return binary.LittleEndian.Uint64(buff)
}

func WriteUInt16(buff []byte, value uint16) {
	binary.LittleEndian.PutUint16(buff, value)
}

func WriteUInt32(buff []byte, value uint32) {
	binary.LittleEndian.PutUint32(buff, value)
}
