package pages

import (
	"fmt"
	"hash/crc32"

	"github.com/lumen-db/lumen/storage/basic"
)

// Crc32 computes a standard CRC-32 (IEEE polynomial) over data.
func Crc32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// PageChecksum computes the integrity checksum of a full page image: CRC-32
// over every byte except the 4-byte checksum field itself (header offset
// 8..12). Excluding the field lets the result be stored into the page
// without invalidating itself.
//
// Covering the header as well as the data area means corruption of the
// structural fields (page_id, page_type, lsn) is caught too, not just
// payload damage.
func PageChecksum(pageData []byte) (uint32, error) {
	if len(pageData) != PageSize {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d",
			basic.ErrInvalidPageSize, PageSize, len(pageData))
	}

	h := crc32.NewIEEE()
	h.Write(pageData[:FHeaderChecksum])
	h.Write(pageData[FHeaderChecksum+4:])
	return h.Sum32(), nil
}
