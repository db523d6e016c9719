package pages

import (
	"fmt"

	"github.com/lumen-db/lumen/storage/basic"
)

// PageType is the one-byte role tag stored at offset 4 of every page header.
// The values are part of the on-disk format and must not be renumbered.
type PageType uint8

const (
	PageTypeHeader        PageType = 0x01 // space file header (page 0)
	PageTypeTableMetadata PageType = 0x02 // table definitions
	PageTypeData          PageType = 0x03 // row data
	PageTypeBTreeInternal PageType = 0x04 // B+tree internal node
	PageTypeBTreeLeaf     PageType = 0x05 // B+tree leaf node
	PageTypeVectorIndex   PageType = 0x06 // vector similarity index
	PageTypeOverflow      PageType = 0x07 // continuation of oversized values
	PageTypeFreeList      PageType = 0x08 // free page chain
	PageTypeBloomFilter   PageType = 0x09 // existence filter
)

// ParsePageType decodes a raw tag byte. Any byte outside the defined range
// fails; a bad tag on disk means corruption or a format mismatch, never a
// silent fallback.
func ParsePageType(value byte) (PageType, error) {
	if value < byte(PageTypeHeader) || value > byte(PageTypeBloomFilter) {
		return 0, fmt.Errorf("%w: 0x%02X", basic.ErrInvalidPageType, value)
	}
	return PageType(value), nil
}

func (t PageType) String() string {
	switch t {
	case PageTypeHeader:
		return "HEADER"
	case PageTypeTableMetadata:
		return "TABLE_METADATA"
	case PageTypeData:
		return "DATA"
	case PageTypeBTreeInternal:
		return "BTREE_INTERNAL"
	case PageTypeBTreeLeaf:
		return "BTREE_LEAF"
	case PageTypeVectorIndex:
		return "VECTOR_INDEX"
	case PageTypeOverflow:
		return "OVERFLOW"
	case PageTypeFreeList:
		return "FREE_LIST"
	case PageTypeBloomFilter:
		return "BLOOM_FILTER"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// IsBTreePage reports whether the page belongs to a B+tree (leaf or internal).
func (t PageType) IsBTreePage() bool {
	return t == PageTypeBTreeLeaf || t == PageTypeBTreeInternal
}

func (t PageType) IsFreeList() bool {
	return t == PageTypeFreeList
}

func (t PageType) IsOverflow() bool {
	return t == PageTypeOverflow
}

func (t PageType) IsData() bool {
	return t == PageTypeData
}

// IsMetadata reports whether the page carries structural metadata
// (the space header page or a table metadata page).
func (t PageType) IsMetadata() bool {
	return t == PageTypeHeader || t == PageTypeTableMetadata
}
