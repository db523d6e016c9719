package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageLayoutConstants(t *testing.T) {
	assert.Equal(t, 4096, PageSize)
	assert.Equal(t, 16, PageHeaderSize)
	assert.Equal(t, 4080, PageUsableSize)
	assert.Equal(t, PageSize, PageHeaderSize+PageUsableSize)

	// power of two, required for aligned offsets and direct I/O
	assert.Zero(t, PageSize&(PageSize-1))
}

func TestPageIDConstants(t *testing.T) {
	assert.Equal(t, PageID(0), InvalidPageID)
	assert.Equal(t, PageID(0xFFFFFFFF), MaxPageID)

	// 32-bit ids at 4KB per page address just under 16TB
	maxBytes := uint64(MaxPageID) * uint64(PageSize)
	assert.Equal(t, uint64(17_592_186_040_320), maxBytes)
}
