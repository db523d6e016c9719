package util

import (
	"github.com/OneOfOne/xxhash"
)

// 将一个键进行Hash
func HashCode(key []byte) uint64 {
	h := xxhash.New64()
	h.Write(key)
	return h.Sum64()
}

// HashUInt32 hashes a 32-bit key, used for latch shard selection.
func HashUInt32(key uint32) uint64 {
	return HashCode(ConvertUInt4Bytes(key))
}
