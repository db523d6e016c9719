// Package pageio moves pages between memory and a page-addressed backing
// file. Four transports are provided (buffered, synced, memory-mapped,
// direct); every read path verifies the page checksum before the page is
// handed to the caller, so a successfully returned page is always
// structurally trustworthy.
package pageio

import (
	"fmt"
	"os"

	"github.com/juju/errors"

	"github.com/lumen-db/lumen/storage/basic"
	"github.com/lumen-db/lumen/storage/pages"
)

// PageOffset returns the byte offset of a page inside the backing file.
// Widened before multiplying so MaxPageID cannot overflow.
func PageOffset(pageID pages.PageID) int64 {
	return int64(uint64(pageID) * uint64(pages.PageSize))
}

// WritePage writes the page at its computed offset through the OS cache.
// No durability barrier is issued; use WritePageSync when the write must
// survive a crash immediately after the call returns.
func WritePage(file *os.File, pageID pages.PageID, page *pages.Page) error {
	offset := PageOffset(pageID)
	n, err := file.WriteAt(page.Raw(), offset)
	if err != nil {
		return errors.Annotatef(err, "write page %d at offset %d", pageID, offset)
	}
	if n != pages.PageSize {
		return errors.Errorf("incomplete write of page %d: %d bytes", pageID, n)
	}
	return nil
}

// WritePageSync writes the page and forces it to stable storage before
// returning.
func WritePageSync(file *os.File, pageID pages.PageID, page *pages.Page) error {
	if err := WritePage(file, pageID, page); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return errors.Annotatef(err, "sync after writing page %d", pageID)
	}
	return nil
}

// ReadPage reads exactly one page at the computed offset and verifies its
// checksum. A short or failed read surfaces as an I/O error; a checksum
// mismatch surfaces as corruption, never as a page.
func ReadPage(file *os.File, pageID pages.PageID) (*pages.Page, error) {
	offset := PageOffset(pageID)
	page := pages.NewPage()
	n, err := file.ReadAt(page.Raw(), offset)
	if err != nil {
		return nil, errors.Annotatef(err, "read page %d at offset %d", pageID, offset)
	}
	if n != pages.PageSize {
		return nil, errors.Errorf("incomplete read of page %d: %d bytes", pageID, n)
	}
	return verifiedPage(page, pageID)
}

// verifiedPage is the corruption gate shared by all read transports.
func verifiedPage(page *pages.Page, pageID pages.PageID) (*pages.Page, error) {
	if !page.VerifyChecksum() {
		return nil, fmt.Errorf("%w: checksum mismatch on page %d (stored 0x%08X)",
			basic.ErrPageCorrupted, pageID, page.Header().Checksum)
	}
	return page, nil
}
