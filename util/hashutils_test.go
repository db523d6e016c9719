package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashCodeIsStable(t *testing.T) {
	a := HashCode([]byte("788788"))
	b := HashCode([]byte("788788"))
	assert.Equal(t, a, b)

	assert.NotEqual(t, HashCode(ConvertUInt4Bytes(1)), HashCode(ConvertUInt4Bytes(2)))
}

func TestHashUInt32(t *testing.T) {
	assert.Equal(t, HashCode(ConvertUInt4Bytes(42)), HashUInt32(42))
}
