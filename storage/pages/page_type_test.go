package pages

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-db/lumen/storage/basic"
)

func TestPageTypeOnDiskValues(t *testing.T) {
	assert.Equal(t, uint8(0x01), uint8(PageTypeHeader))
	assert.Equal(t, uint8(0x02), uint8(PageTypeTableMetadata))
	assert.Equal(t, uint8(0x03), uint8(PageTypeData))
	assert.Equal(t, uint8(0x04), uint8(PageTypeBTreeInternal))
	assert.Equal(t, uint8(0x05), uint8(PageTypeBTreeLeaf))
	assert.Equal(t, uint8(0x06), uint8(PageTypeVectorIndex))
	assert.Equal(t, uint8(0x07), uint8(PageTypeOverflow))
	assert.Equal(t, uint8(0x08), uint8(PageTypeFreeList))
	assert.Equal(t, uint8(0x09), uint8(PageTypeBloomFilter))
}

func TestParsePageTypeTotality(t *testing.T) {
	for b := 0; b <= 255; b++ {
		value := byte(b)
		parsed, err := ParsePageType(value)
		if value >= 0x01 && value <= 0x09 {
			require.NoError(t, err, "byte 0x%02X", value)
			assert.Equal(t, PageType(value), parsed)
		} else {
			require.Error(t, err, "byte 0x%02X", value)
			assert.ErrorIs(t, err, basic.ErrInvalidPageType)
			// the offending byte is part of the failure
			assert.Contains(t, err.Error(), fmt.Sprintf("0x%02X", value))
		}
	}
}

func TestPageTypePredicates(t *testing.T) {
	assert.True(t, PageTypeBTreeLeaf.IsBTreePage())
	assert.True(t, PageTypeBTreeInternal.IsBTreePage())
	assert.False(t, PageTypeData.IsBTreePage())
	assert.False(t, PageTypeOverflow.IsBTreePage())

	assert.True(t, PageTypeFreeList.IsFreeList())
	assert.False(t, PageTypeBTreeLeaf.IsFreeList())

	assert.True(t, PageTypeOverflow.IsOverflow())
	assert.False(t, PageTypeData.IsOverflow())

	assert.True(t, PageTypeData.IsData())
	assert.False(t, PageTypeBTreeLeaf.IsData())

	assert.True(t, PageTypeHeader.IsMetadata())
	assert.True(t, PageTypeTableMetadata.IsMetadata())
	assert.False(t, PageTypeData.IsMetadata())
	assert.False(t, PageTypeBTreeLeaf.IsMetadata())
}

func TestPageTypeString(t *testing.T) {
	assert.Equal(t, "BTREE_LEAF", PageTypeBTreeLeaf.String())
	assert.Equal(t, "UNKNOWN(0xAB)", PageType(0xAB).String())
}
