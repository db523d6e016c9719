//go:build linux

package pageio

import (
	"os"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"

	"github.com/lumen-db/lumen/storage/pages"
)

// DirectIOSupported reports whether the uncached transport actually
// bypasses the OS page cache on this platform. Note that individual
// filesystems (tmpfs among them) may still reject O_DIRECT at open time.
func DirectIOSupported() bool {
	return true
}

// WritePageDirect writes the page bypassing the OS page cache. O_DIRECT
// requires the transfer size, the file offset and the user buffer to be
// block-aligned; pages satisfy all three (the buffer is PageSize-aligned).
// A durability barrier follows the write.
func WritePageDirect(path string, pageID pages.PageID, page *pages.Page) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|unix.O_DIRECT, 0644)
	if err != nil {
		return errors.Annotatef(err, "open %s for direct write", path)
	}
	defer file.Close()

	if err := WritePage(file, pageID, page); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return errors.Annotatef(err, "sync after direct write of page %d", pageID)
	}
	return nil
}

// ReadPageDirect reads the page bypassing the OS page cache, with the
// usual checksum gate.
func ReadPageDirect(path string, pageID pages.PageID) (*pages.Page, error) {
	file, err := os.OpenFile(path, os.O_RDONLY|unix.O_DIRECT, 0)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s for direct read", path)
	}
	defer file.Close()
	return ReadPage(file, pageID)
}
