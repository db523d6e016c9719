package basic

import "errors"

// 页面相关错误
var (
	ErrPageCorrupted   = errors.New("page corrupted")
	ErrInvalidPageType = errors.New("invalid page type")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidPageID   = errors.New("invalid page ID")
	ErrPageNotFound    = errors.New("page not found")
)

// 表空间文件相关错误
var (
	ErrSpaceNotOpen     = errors.New("space file not open")
	ErrSpaceAlreadyOpen = errors.New("space file already open")
	ErrSpaceNotFound    = errors.New("space file not found")
	ErrBadMagic         = errors.New("bad space file magic")
	ErrNoFreePages      = errors.New("no free pages")
)

// 压缩页面相关错误
var (
	ErrCompressionFailed     = errors.New("compression failed")
	ErrDecompressionFailed   = errors.New("decompression failed")
	ErrUnsupportedAlgorithm  = errors.New("unsupported compression algorithm")
	ErrInvalidCompressedData = errors.New("invalid compressed data")
)

// 配置相关错误
var (
	ErrInvalidFlushMethod = errors.New("invalid flush method")
)
