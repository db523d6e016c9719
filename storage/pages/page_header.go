package pages

import (
	"fmt"

	"github.com/lumen-db/lumen/storage/basic"
	"github.com/lumen-db/lumen/util"
)

// FHeader* 页面头字段偏移量
//
// The header occupies the first 16 bytes of every page:
//
//	offset 0  page_id    u32
//	offset 4  page_type  u8
//	offset 5  flags      u8
//	offset 6  free_space u16
//	offset 8  checksum   u32 (excluded from the page checksum)
//	offset 12 lsn        u32
const (
	FHeaderPageID    = 0
	FHeaderPageType  = 4
	FHeaderFlags     = 5
	FHeaderFreeSpace = 6
	FHeaderChecksum  = 8
	FHeaderLSN       = 12
)

// Header flag bits. The remaining bits are reserved and kept zero.
const (
	flagDirty  = 0x01
	flagPinned = 0x02
)

// PageHeader is the decoded form of the fixed 16-byte record at a page's
// start. It is serialized field by field at explicit offsets instead of
// being aliased onto the buffer, so the unaligned multi-byte fields
// (free_space at 6, checksum at 8 relative to odd packing) are always
// accessed safely and the byte order stays little-endian everywhere.
type PageHeader struct {
	PageID    PageID
	Type      PageType
	Flags     uint8
	FreeSpace uint16
	Checksum  uint32
	LSN       uint32
}

// DefaultPageHeader returns the header of a freshly formatted page: header
// type tag, the whole data area free, everything else zero.
func DefaultPageHeader() PageHeader {
	return PageHeader{
		PageID:    InvalidPageID,
		Type:      PageTypeHeader,
		FreeSpace: PageUsableSize,
	}
}

// NewPageHeader creates a default header with type and id overridden.
func NewPageHeader(pageType PageType, pageID PageID) PageHeader {
	h := DefaultPageHeader()
	h.Type = pageType
	h.PageID = pageID
	return h
}

func (h *PageHeader) IsDirty() bool {
	return h.Flags&flagDirty != 0
}

func (h *PageHeader) SetDirty(dirty bool) {
	if dirty {
		h.Flags |= flagDirty
	} else {
		h.Flags &^= flagDirty
	}
}

func (h *PageHeader) IsPinned() bool {
	return h.Flags&flagPinned != 0
}

func (h *PageHeader) SetPinned(pinned bool) {
	if pinned {
		h.Flags |= flagPinned
	} else {
		h.Flags &^= flagPinned
	}
}

// Marshal encodes the header into the first PageHeaderSize bytes of buff.
func (h *PageHeader) Marshal(buff []byte) error {
	if len(buff) < PageHeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d",
			basic.ErrInvalidPageSize, PageHeaderSize, len(buff))
	}
	util.WriteUInt32(buff[FHeaderPageID:], uint32(h.PageID))
	buff[FHeaderPageType] = byte(h.Type)
	buff[FHeaderFlags] = h.Flags
	util.WriteUInt16(buff[FHeaderFreeSpace:], h.FreeSpace)
	util.WriteUInt32(buff[FHeaderChecksum:], h.Checksum)
	util.WriteUInt32(buff[FHeaderLSN:], h.LSN)
	return nil
}

// UnmarshalPageHeader decodes a header from the first PageHeaderSize bytes
// of buff. The fields are taken as-is; callers that branch on the type tag
// validate it through ParsePageType.
func UnmarshalPageHeader(buff []byte) (PageHeader, error) {
	if len(buff) < PageHeaderSize {
		return PageHeader{}, fmt.Errorf("%w: header needs %d bytes, got %d",
			basic.ErrInvalidPageSize, PageHeaderSize, len(buff))
	}
	return PageHeader{
		PageID:    PageID(util.ReadUInt32(buff[FHeaderPageID:])),
		Type:      PageType(buff[FHeaderPageType]),
		Flags:     buff[FHeaderFlags],
		FreeSpace: util.ReadUInt16(buff[FHeaderFreeSpace:]),
		Checksum:  util.ReadUInt32(buff[FHeaderChecksum:]),
		LSN:       util.ReadUInt32(buff[FHeaderLSN:]),
	}, nil
}
