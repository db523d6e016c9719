package pages

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/lumen-db/lumen/storage/basic"
	"github.com/lumen-db/lumen/util"
)

// CompressionAlgorithm identifies how a page snapshot payload is encoded.
type CompressionAlgorithm uint16

const (
	CompressionNone   CompressionAlgorithm = 0
	CompressionZLIB   CompressionAlgorithm = 1
	CompressionLZ4    CompressionAlgorithm = 2
	CompressionSnappy CompressionAlgorithm = 3
)

// Compressed snapshot frame, little-endian:
//
//	offset 0  original size   u32 (always PageSize)
//	offset 4  compressed size u32
//	offset 8  algorithm       u16
//	offset 10 payload crc32   u32
//	offset 14 reserved        u16
//	offset 16 payload
const CompressionHeaderSize = 16

// CompressPage encodes the full page image into a self-describing
// compressed frame, used for snapshot export and overflow archival.
// Incompressible pages are stored raw under CompressionNone.
func CompressPage(page *Page, algorithm CompressionAlgorithm) ([]byte, error) {
	raw := page.Raw()

	var payload []byte
	switch algorithm {
	case CompressionNone:
		payload = append([]byte(nil), raw...)
	case CompressionZLIB:
		var buff bytes.Buffer
		w := zlib.NewWriter(&buff)
		if _, err := w.Write(raw); err != nil {
			w.Close()
			return nil, fmt.Errorf("%w: zlib: %v", basic.ErrCompressionFailed, err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", basic.ErrCompressionFailed, err)
		}
		payload = buff.Bytes()
	case CompressionLZ4:
		var c lz4.Compressor
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := c.CompressBlock(raw, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", basic.ErrCompressionFailed, err)
		}
		if n == 0 {
			// incompressible, store raw
			return CompressPage(page, CompressionNone)
		}
		payload = dst[:n]
	case CompressionSnappy:
		payload = snappy.Encode(nil, raw)
	default:
		return nil, fmt.Errorf("%w: %d", basic.ErrUnsupportedAlgorithm, algorithm)
	}

	frame := make([]byte, CompressionHeaderSize+len(payload))
	util.WriteUInt32(frame[0:], uint32(len(raw)))
	util.WriteUInt32(frame[4:], uint32(len(payload)))
	util.WriteUInt16(frame[8:], uint16(algorithm))
	util.WriteUInt32(frame[10:], Crc32(payload))
	copy(frame[CompressionHeaderSize:], payload)
	return frame, nil
}

// DecompressPage decodes a frame produced by CompressPage back into a
// page. The frame's own crc is checked before decompression and the
// result must be exactly one page.
func DecompressPage(frame []byte) (*Page, error) {
	if len(frame) < CompressionHeaderSize {
		return nil, fmt.Errorf("%w: frame truncated at %d bytes",
			basic.ErrInvalidCompressedData, len(frame))
	}
	originalSize := util.ReadUInt32(frame[0:])
	compressedSize := util.ReadUInt32(frame[4:])
	algorithm := CompressionAlgorithm(util.ReadUInt16(frame[8:]))
	payloadCrc := util.ReadUInt32(frame[10:])

	if originalSize != PageSize {
		return nil, fmt.Errorf("%w: original size %d",
			basic.ErrInvalidCompressedData, originalSize)
	}
	if int(compressedSize) != len(frame)-CompressionHeaderSize {
		return nil, fmt.Errorf("%w: payload size %d does not match frame",
			basic.ErrInvalidCompressedData, compressedSize)
	}
	payload := frame[CompressionHeaderSize:]
	if Crc32(payload) != payloadCrc {
		return nil, fmt.Errorf("%w: payload crc mismatch",
			basic.ErrInvalidCompressedData)
	}

	page := NewPage()
	switch algorithm {
	case CompressionNone:
		if len(payload) != PageSize {
			return nil, fmt.Errorf("%w: raw payload is %d bytes",
				basic.ErrInvalidCompressedData, len(payload))
		}
		copy(page.Raw(), payload)
	case CompressionZLIB:
		r, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", basic.ErrDecompressionFailed, err)
		}
		defer r.Close()
		if _, err := io.ReadFull(r, page.Raw()); err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", basic.ErrDecompressionFailed, err)
		}
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(payload, page.Raw())
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", basic.ErrDecompressionFailed, err)
		}
		if n != PageSize {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes",
				basic.ErrDecompressionFailed, n)
		}
	case CompressionSnappy:
		decoded, err := snappy.Decode(nil, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: snappy: %v", basic.ErrDecompressionFailed, err)
		}
		if len(decoded) != PageSize {
			return nil, fmt.Errorf("%w: snappy produced %d bytes",
				basic.ErrDecompressionFailed, len(decoded))
		}
		copy(page.Raw(), decoded)
	default:
		return nil, fmt.Errorf("%w: %d", basic.ErrUnsupportedAlgorithm, algorithm)
	}
	return page, nil
}
