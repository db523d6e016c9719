//go:build !unix

package pageio

import (
	"os"

	"github.com/juju/errors"

	"github.com/lumen-db/lumen/storage/pages"
)

// MappedIOSupported reports whether this build uses a real memory mapping
// for the mapped transport.
func MappedIOSupported() bool {
	return false
}

// WritePageMapped falls back to a synced buffered write on platforms
// without the mapping facility; the durability behavior is preserved.
func WritePageMapped(path string, pageID pages.PageID, page *pages.Page) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return errors.Annotatef(err, "open %s for mapped write", path)
	}
	defer file.Close()
	return WritePageSync(file, pageID, page)
}

// ReadPageMapped falls back to a buffered read with the same checksum gate.
func ReadPageMapped(path string, pageID pages.PageID) (*pages.Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "open %s for mapped read", path)
	}
	defer file.Close()
	return ReadPage(file, pageID)
}
