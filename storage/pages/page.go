package pages

import (
	"unsafe"

	"github.com/lumen-db/lumen/util"
)

// Page is the unit of storage: a 4096-byte buffer holding the 16-byte
// header followed by the data area. The buffer is allocated aligned to
// PageSize, which O_DIRECT transfers require and which keeps mmap copies
// on page boundaries.
//
// A Page owns its buffer outright and holds no references to other pages;
// page-to-page links are PageID values inside the data area, resolved by
// higher layers. There is no internal locking, concurrent writers of the
// same Page must serialize externally.
type Page struct {
	buf []byte
}

// alignedBlock allocates size bytes whose base address is a multiple of
// align. Go's allocator gives no alignment guarantee beyond the type's,
// so over-allocate and slice to the boundary.
func alignedBlock(size, align int) []byte {
	block := make([]byte, size+align)
	offset := int(uintptr(unsafe.Pointer(&block[0])) & uintptr(align-1))
	if offset == 0 {
		return block[:size:size]
	}
	start := align - offset
	return block[start : start+size : start+size]
}

// NewPage creates a zero-initialized page with its header set to the
// default state.
func NewPage() *Page {
	p := &Page{buf: alignedBlock(PageSize, PageSize)}
	h := DefaultPageHeader()
	h.Marshal(p.buf)
	return p
}

// NewPageOf creates a page pre-tagged with the given type and id.
func NewPageOf(pageType PageType, pageID PageID) *Page {
	p := NewPage()
	h := NewPageHeader(pageType, pageID)
	h.Marshal(p.buf)
	return p
}

// Header decodes the current header record.
func (p *Page) Header() PageHeader {
	h, _ := UnmarshalPageHeader(p.buf) // buffer is always PageSize
	return h
}

// SetHeader encodes h into the page's first PageHeaderSize bytes.
func (p *Page) SetHeader(h PageHeader) {
	h.Marshal(p.buf)
}

// Data returns the usable data area (PageUsableSize bytes). The slice
// aliases the page buffer, writes through it mutate the page.
func (p *Page) Data() []byte {
	return p.buf[PageHeaderSize:]
}

// Raw returns the whole page buffer, used by the I/O layer and the
// checksum computation.
func (p *Page) Raw() []byte {
	return p.buf
}

func (p *Page) Size() int {
	return PageSize
}

func (p *Page) UsableSize() int {
	return PageUsableSize
}

// CalculateChecksum computes the page checksum over the current contents
// and stores it into the header's checksum field.
func (p *Page) CalculateChecksum() error {
	sum, err := PageChecksum(p.buf)
	if err != nil {
		return err
	}
	util.WriteUInt32(p.buf[FHeaderChecksum:], sum)
	return nil
}

// VerifyChecksum recomputes the checksum and compares it against the
// stored field. Fail-closed: any computation error counts as a mismatch.
func (p *Page) VerifyChecksum() bool {
	computed, err := PageChecksum(p.buf)
	if err != nil {
		return false
	}
	stored := util.ReadUInt32(p.buf[FHeaderChecksum:])
	return computed == stored
}

func (p *Page) IsCorrupted() bool {
	return !p.VerifyChecksum()
}
