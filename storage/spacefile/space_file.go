// Package spacefile manages a single page-addressed database file: the
// header page with the file's identity and allocation state, page
// allocation through a free-list chain, and read/write access routed
// through the configured flush method.
package spacefile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/juju/errors"

	"github.com/lumen-db/lumen/conf"
	"github.com/lumen-db/lumen/logger"
	"github.com/lumen-db/lumen/storage/basic"
	"github.com/lumen-db/lumen/storage/pageio"
	"github.com/lumen-db/lumen/storage/pages"
	"github.com/lumen-db/lumen/util"
)

// SpaceMagic identifies a lumen space file, stored at the start of the
// header page's data area.
const SpaceMagic = "LUMENDB\x00"

const latchShards = 16

// Header page data area layout (relative offsets, little-endian).
const (
	hdrMagic        = 0  // 8 bytes
	hdrPageSize     = 8  // u32
	hdrPageCount    = 12 // u32
	hdrFreeListHead = 16 // u32
	hdrFreeCount    = 20 // u32
)

// SpaceFile is a single-file page store. Page 0 is the header page and is
// never handed out by the allocator; freed pages are chained through the
// first four data bytes of each free page, as a FreeList-typed page.
type SpaceFile struct {
	mu sync.RWMutex

	path        string
	file        *os.File
	flushMethod conf.FlushMethod

	pageCount    uint32
	freeListHead pages.PageID
	freeCount    uint32

	// same-page writers serialize on a latch shard keyed by page id
	latches [latchShards]sync.Mutex
}

// Create initializes a new space file from the configuration. An existing
// file is opened instead.
func Create(cfg *conf.Cfg) (*SpaceFile, error) {
	path := cfg.SpacePath()
	exists, err := util.PathExists(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if exists {
		return Open(cfg)
	}

	if err := util.CreateDirIfNotExists(filepath.Dir(path)); err != nil {
		return nil, errors.Annotatef(err, "create data dir for %s", path)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, errors.Annotatef(err, "create space file %s", path)
	}

	sf := &SpaceFile{
		path:        path,
		file:        file,
		flushMethod: cfg.FlushMethod,
		pageCount:   1, // just the header page
	}
	if err := sf.writeHeaderPageLocked(); err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}

	if cfg.InitialSizeMB > 0 {
		size := int64(cfg.InitialSizeMB) << 20
		if err := file.Truncate(size); err != nil {
			file.Close()
			os.Remove(path)
			return nil, errors.Annotatef(err, "presize %s to %d bytes", path, size)
		}
	}

	logger.Infof("created space file %s (flush_method=%s)", path, cfg.FlushMethod)
	return sf, nil
}

// Open loads an existing space file, verifying the header page's checksum,
// magic and page size before trusting its allocation state.
func Open(cfg *conf.Cfg) (*SpaceFile, error) {
	path := cfg.SpacePath()
	exists, err := util.PathExists(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if !exists {
		return Create(cfg)
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Annotatef(err, "open space file %s", path)
	}

	sf := &SpaceFile{
		path:        path,
		file:        file,
		flushMethod: cfg.FlushMethod,
	}
	if err := sf.loadHeaderPage(); err != nil {
		file.Close()
		return nil, err
	}

	logger.Infof("opened space file %s (%d pages, %d free)",
		path, sf.pageCount, sf.freeCount)
	return sf, nil
}

func (sf *SpaceFile) loadHeaderPage() error {
	page, err := pageio.ReadPage(sf.file, 0)
	if err != nil {
		logger.Errorf("header page of %s unreadable: %v", sf.path, err)
		return err
	}

	data := page.Data()
	if string(data[hdrMagic:hdrMagic+len(SpaceMagic)]) != SpaceMagic {
		return fmt.Errorf("%w: %s", basic.ErrBadMagic, sf.path)
	}
	if got := util.ReadUInt32(data[hdrPageSize:]); got != pages.PageSize {
		return fmt.Errorf("%w: %s uses %d-byte pages",
			basic.ErrInvalidPageSize, sf.path, got)
	}

	sf.pageCount = util.ReadUInt32(data[hdrPageCount:])
	sf.freeListHead = pages.PageID(util.ReadUInt32(data[hdrFreeListHead:]))
	sf.freeCount = util.ReadUInt32(data[hdrFreeCount:])
	if sf.pageCount == 0 {
		return fmt.Errorf("%w: %s reports zero pages", basic.ErrPageCorrupted, sf.path)
	}
	return nil
}

// writeHeaderPageLocked persists the allocation state. The header page is
// always written synced; losing it loses the whole file.
func (sf *SpaceFile) writeHeaderPageLocked() error {
	page := pages.NewPageOf(pages.PageTypeHeader, 0)
	data := page.Data()
	copy(data[hdrMagic:], SpaceMagic)
	util.WriteUInt32(data[hdrPageSize:], pages.PageSize)
	util.WriteUInt32(data[hdrPageCount:], sf.pageCount)
	util.WriteUInt32(data[hdrFreeListHead:], uint32(sf.freeListHead))
	util.WriteUInt32(data[hdrFreeCount:], sf.freeCount)
	if err := page.CalculateChecksum(); err != nil {
		return errors.Trace(err)
	}
	return pageio.WritePageSync(sf.file, 0, page)
}

func (sf *SpaceFile) latchFor(pageID pages.PageID) *sync.Mutex {
	return &sf.latches[util.HashUInt32(uint32(pageID))%latchShards]
}

func (sf *SpaceFile) writeThrough(pageID pages.PageID, page *pages.Page) error {
	switch sf.flushMethod {
	case conf.FlushMapped:
		return pageio.WritePageMapped(sf.path, pageID, page)
	case conf.FlushDirect:
		return pageio.WritePageDirect(sf.path, pageID, page)
	case conf.FlushBuffered:
		return pageio.WritePage(sf.file, pageID, page)
	default:
		return pageio.WritePageSync(sf.file, pageID, page)
	}
}

func (sf *SpaceFile) readThrough(pageID pages.PageID) (*pages.Page, error) {
	switch sf.flushMethod {
	case conf.FlushMapped:
		return pageio.ReadPageMapped(sf.path, pageID)
	case conf.FlushDirect:
		return pageio.ReadPageDirect(sf.path, pageID)
	default:
		return pageio.ReadPage(sf.file, pageID)
	}
}

// WritePage stamps the page with its id and checksum and writes it through
// the configured flush method. The header page cannot be written this way.
func (sf *SpaceFile) WritePage(pageID pages.PageID, page *pages.Page) error {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	if sf.file == nil {
		return basic.ErrSpaceNotOpen
	}
	if pageID == 0 || uint32(pageID) >= sf.pageCount {
		return fmt.Errorf("%w: %d (space holds %d pages)",
			basic.ErrInvalidPageID, pageID, sf.pageCount)
	}
	return sf.writePageWithLatch(pageID, page)
}

func (sf *SpaceFile) writePageWithLatch(pageID pages.PageID, page *pages.Page) error {
	h := page.Header()
	h.PageID = pageID
	page.SetHeader(h)
	if err := page.CalculateChecksum(); err != nil {
		return errors.Trace(err)
	}

	latch := sf.latchFor(pageID)
	latch.Lock()
	defer latch.Unlock()
	return sf.writeThrough(pageID, page)
}

// ReadPage returns the page, checksum-verified by the transport.
func (sf *SpaceFile) ReadPage(pageID pages.PageID) (*pages.Page, error) {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	if sf.file == nil {
		return nil, basic.ErrSpaceNotOpen
	}
	if uint32(pageID) >= sf.pageCount {
		return nil, fmt.Errorf("%w: %d (space holds %d pages)",
			basic.ErrPageNotFound, pageID, sf.pageCount)
	}
	return sf.readThrough(pageID)
}

// AllocatePage hands out a page id, reusing the free list before growing
// the file, and writes a fresh page of the given type at that id.
func (sf *SpaceFile) AllocatePage(pageType pages.PageType) (pages.PageID, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.file == nil {
		return pages.InvalidPageID, basic.ErrSpaceNotOpen
	}

	var pageID pages.PageID
	if sf.freeListHead != pages.InvalidPageID {
		pageID = sf.freeListHead
		freed, err := sf.readThrough(pageID)
		if err != nil {
			return pages.InvalidPageID, errors.Annotatef(err, "read free page %d", pageID)
		}
		sf.freeListHead = pages.PageID(util.ReadUInt32(freed.Data()[0:4]))
		sf.freeCount--
	} else {
		if sf.pageCount == uint32(pages.MaxPageID) {
			return pages.InvalidPageID, basic.ErrNoFreePages
		}
		pageID = pages.PageID(sf.pageCount)
		sf.pageCount++
	}

	page := pages.NewPageOf(pageType, pageID)
	if err := sf.writePageWithLatch(pageID, page); err != nil {
		return pages.InvalidPageID, err
	}
	if err := sf.writeHeaderPageLocked(); err != nil {
		return pages.InvalidPageID, err
	}
	return pageID, nil
}

// FreePage pushes the page onto the free list. Its old contents are
// replaced by a FreeList page whose first four data bytes chain to the
// previous head.
func (sf *SpaceFile) FreePage(pageID pages.PageID) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.file == nil {
		return basic.ErrSpaceNotOpen
	}
	if pageID == 0 || uint32(pageID) >= sf.pageCount {
		return fmt.Errorf("%w: %d", basic.ErrInvalidPageID, pageID)
	}

	page := pages.NewPageOf(pages.PageTypeFreeList, pageID)
	util.WriteUInt32(page.Data()[0:4], uint32(sf.freeListHead))
	if err := sf.writePageWithLatch(pageID, page); err != nil {
		return err
	}

	sf.freeListHead = pageID
	sf.freeCount++
	return sf.writeHeaderPageLocked()
}

// ExportPage reads a page and wraps it into a compressed snapshot frame.
func (sf *SpaceFile) ExportPage(pageID pages.PageID, algorithm pages.CompressionAlgorithm) ([]byte, error) {
	page, err := sf.ReadPage(pageID)
	if err != nil {
		return nil, err
	}
	return pages.CompressPage(page, algorithm)
}

// ImportPage restores a snapshot frame at the page id recorded inside it.
func (sf *SpaceFile) ImportPage(frame []byte) (pages.PageID, error) {
	page, err := pages.DecompressPage(frame)
	if err != nil {
		return pages.InvalidPageID, err
	}
	if !page.VerifyChecksum() {
		return pages.InvalidPageID, fmt.Errorf("%w: imported snapshot",
			basic.ErrPageCorrupted)
	}
	pageID := page.Header().PageID
	if err := sf.WritePage(pageID, page); err != nil {
		return pages.InvalidPageID, err
	}
	return pageID, nil
}

func (sf *SpaceFile) PageCount() uint32 {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.pageCount
}

func (sf *SpaceFile) FreePageCount() uint32 {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.freeCount
}

func (sf *SpaceFile) Path() string {
	return sf.path
}

// Flush forces all buffered writes to stable storage.
func (sf *SpaceFile) Flush() error {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	if sf.file == nil {
		return basic.ErrSpaceNotOpen
	}
	return errors.Trace(sf.file.Sync())
}

// Close persists the header page and closes the file.
func (sf *SpaceFile) Close() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.file == nil {
		return basic.ErrSpaceNotOpen
	}
	if err := sf.writeHeaderPageLocked(); err != nil {
		return err
	}
	if err := sf.file.Sync(); err != nil {
		return errors.Trace(err)
	}
	err := sf.file.Close()
	sf.file = nil
	logger.Infof("closed space file %s", sf.path)
	return errors.Trace(err)
}
