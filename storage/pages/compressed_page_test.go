package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-db/lumen/storage/basic"
)

func snapshotPage(t *testing.T) *Page {
	t.Helper()
	page := NewPageOf(PageTypeData, 77)
	for i := range page.Data() {
		page.Data()[i] = byte(i % 17) // repetitive, compresses well
	}
	require.NoError(t, page.CalculateChecksum())
	return page
}

func TestCompressPageRoundTrip(t *testing.T) {
	algorithms := []CompressionAlgorithm{
		CompressionNone, CompressionZLIB, CompressionLZ4, CompressionSnappy,
	}

	for _, algorithm := range algorithms {
		page := snapshotPage(t)
		frame, err := CompressPage(page, algorithm)
		require.NoError(t, err, "algorithm %d", algorithm)

		restored, err := DecompressPage(frame)
		require.NoError(t, err, "algorithm %d", algorithm)
		assert.Equal(t, page.Raw(), restored.Raw(), "algorithm %d", algorithm)
		assert.True(t, restored.VerifyChecksum())
	}
}

func TestCompressPageShrinksRepetitiveData(t *testing.T) {
	page := snapshotPage(t)

	frame, err := CompressPage(page, CompressionSnappy)
	require.NoError(t, err)
	assert.Less(t, len(frame), PageSize)
}

func TestCompressPageUnknownAlgorithm(t *testing.T) {
	_, err := CompressPage(snapshotPage(t), CompressionAlgorithm(42))
	assert.ErrorIs(t, err, basic.ErrUnsupportedAlgorithm)
}

func TestDecompressRejectsTamperedFrame(t *testing.T) {
	frame, err := CompressPage(snapshotPage(t), CompressionSnappy)
	require.NoError(t, err)

	frame[len(frame)-1] ^= 0xFF
	_, err = DecompressPage(frame)
	assert.ErrorIs(t, err, basic.ErrInvalidCompressedData)
}

func TestDecompressRejectsTruncatedFrame(t *testing.T) {
	frame, err := CompressPage(snapshotPage(t), CompressionLZ4)
	require.NoError(t, err)

	_, err = DecompressPage(frame[:CompressionHeaderSize-2])
	assert.ErrorIs(t, err, basic.ErrInvalidCompressedData)

	_, err = DecompressPage(frame[:len(frame)-1])
	assert.ErrorIs(t, err, basic.ErrInvalidCompressedData)
}
