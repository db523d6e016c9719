//go:build !linux

package pageio

import (
	"os"

	"github.com/juju/errors"

	"github.com/lumen-db/lumen/storage/pages"
)

// DirectIOSupported reports whether the uncached transport actually
// bypasses the OS page cache on this platform.
func DirectIOSupported() bool {
	return false
}

// WritePageDirect falls back to a synced buffered write where no uncached
// open flag exists. The durability barrier is kept; only the cache bypass
// is lost.
func WritePageDirect(path string, pageID pages.PageID, page *pages.Page) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return errors.Annotatef(err, "open %s for direct write", path)
	}
	defer file.Close()
	return WritePageSync(file, pageID, page)
}

// ReadPageDirect falls back to a buffered read with the same checksum gate.
func ReadPageDirect(path string, pageID pages.PageID) (*pages.Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s for direct read", path)
	}
	defer file.Close()
	return ReadPage(file, pageID)
}
