//go:build unix

package pageio

import (
	"os"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"

	"github.com/lumen-db/lumen/storage/pages"
)

// MappedIOSupported reports whether this build uses a real memory mapping
// for the mapped transport.
func MappedIOSupported() bool {
	return true
}

// WritePageMapped maps the page-sized target region, copies the page into
// it and flushes the mapping. The file is extended when the target lies
// beyond its current length. PageOffset is always a multiple of PageSize,
// which satisfies the kernel's mapping alignment requirement.
func WritePageMapped(path string, pageID pages.PageID, page *pages.Page) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return errors.Annotatef(err, "open %s for mapped write", path)
	}
	defer file.Close()

	offset := PageOffset(pageID)
	end := offset + int64(pages.PageSize)
	info, err := file.Stat()
	if err != nil {
		return errors.Trace(err)
	}
	if info.Size() < end {
		if err := file.Truncate(end); err != nil {
			return errors.Annotatef(err, "extend %s to %d bytes", path, end)
		}
	}

	mem, err := unix.Mmap(int(file.Fd()), offset, pages.PageSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return errors.Annotatef(err, "map page %d of %s", pageID, path)
	}
	// keep the mapping scoped to this single write
	defer unix.Munmap(mem)

	copy(mem, page.Raw())
	if err := unix.Msync(mem, unix.MS_SYNC); err != nil {
		return errors.Annotatef(err, "flush mapped page %d of %s", pageID, path)
	}
	return nil
}

// ReadPageMapped reads a page through a read-only mapping of the target
// region, then verifies its checksum like every other read path.
func ReadPageMapped(path string, pageID pages.PageID) (*pages.Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s for mapped read", path)
	}
	defer file.Close()

	offset := PageOffset(pageID)
	info, err := file.Stat()
	if err != nil {
		return nil, errors.Trace(err)
	}
	// mapping past EOF would fault on access instead of failing cleanly
	if info.Size() < offset+int64(pages.PageSize) {
		return nil, errors.Errorf("page %d lies beyond end of %s (%d bytes)",
			pageID, path, info.Size())
	}

	mem, err := unix.Mmap(int(file.Fd()), offset, pages.PageSize,
		unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Annotatef(err, "map page %d of %s", pageID, path)
	}
	defer unix.Munmap(mem)

	page := pages.NewPage()
	copy(page.Raw(), mem)
	return verifiedPage(page, pageID)
}
