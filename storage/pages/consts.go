// Package pages implements the fixed-size page, its on-disk header layout
// and the checksum that guards both.
package pages

import "math"

// Page layout constants. PageSize must be a power of two and at least 4KB;
// every offset in a space file is a multiple of it.
const (
	PageSize       = 4096
	PageHeaderSize = 16
	PageUsableSize = PageSize - PageHeaderSize
)

// PageID is the page number inside a space file. Page N lives at byte
// offset N*PageSize, so 32-bit ids address 16TB of storage.
type PageID uint32

const (
	// InvalidPageID marks an unset page reference. Page 0 exists on disk
	// (it is the space header page) but is never handed out by the allocator.
	InvalidPageID PageID = 0
	MaxPageID     PageID = math.MaxUint32
)
