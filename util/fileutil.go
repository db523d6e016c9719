package util

import (
	"os"
	"path/filepath"
)

func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func CreateDirIfNotExists(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// CreateFileBySize creates a file pre-sized to the given length.
func CreateFileBySize(filePath string, size int64) error {
	if err := CreateDirIfNotExists(filepath.Dir(filePath)); err != nil {
		return err
	}
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer f.Close()
	if size > 0 {
		if err := f.Truncate(size); err != nil {
			return err
		}
	}
	return nil
}
