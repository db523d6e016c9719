package conf

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/lumen-db/lumen/storage/basic"
)

// FlushMethod selects the transport used when pages are written to disk,
// modelled on innodb_flush_method.
type FlushMethod string

const (
	FlushBuffered FlushMethod = "buffered" // write through the OS cache, no fsync
	FlushSynced   FlushMethod = "synced"   // write followed by fsync
	FlushMapped   FlushMethod = "mapped"   // write through a memory mapping, msync
	FlushDirect   FlushMethod = "direct"   // O_DIRECT where available, synced otherwise
)

// Cfg holds the storage engine configuration, loaded from an ini file.
type Cfg struct {
	Raw *ini.File

	// storage
	DataDir       string
	SpaceFile     string
	FlushMethod   FlushMethod
	InitialSizeMB int

	// logs
	LogPath  string
	LogLevel string
}

func NewCfg() *Cfg {
	return &Cfg{
		Raw:           ini.Empty(),
		DataDir:       "data",
		SpaceFile:     "lumen.db",
		FlushMethod:   FlushSynced,
		InitialSizeMB: 0,
		LogPath:       "",
		LogLevel:      "info",
	}
}

// Load reads configuration from the given ini file on top of the defaults.
func (cfg *Cfg) Load(configPath string) error {
	iniFile, err := ini.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration %s: %v", configPath, err)
	}
	cfg.Raw = iniFile

	cfg.parseStorageCfg(iniFile.Section("storage"))
	cfg.parseLogsCfg(iniFile.Section("logs"))

	return cfg.Validate()
}

func (cfg *Cfg) parseStorageCfg(section *ini.Section) {
	cfg.DataDir = section.Key("data_dir").MustString(cfg.DataDir)
	cfg.SpaceFile = section.Key("space_file").MustString(cfg.SpaceFile)
	cfg.FlushMethod = FlushMethod(strings.ToLower(
		section.Key("flush_method").MustString(string(cfg.FlushMethod))))
	cfg.InitialSizeMB = section.Key("initial_size_mb").MustInt(cfg.InitialSizeMB)
}

func (cfg *Cfg) parseLogsCfg(section *ini.Section) {
	cfg.LogPath = section.Key("log_path").MustString(cfg.LogPath)
	cfg.LogLevel = section.Key("log_level").MustString(cfg.LogLevel)
}

func (cfg *Cfg) Validate() error {
	switch cfg.FlushMethod {
	case FlushBuffered, FlushSynced, FlushMapped, FlushDirect:
	default:
		return fmt.Errorf("%w: %q", basic.ErrInvalidFlushMethod, cfg.FlushMethod)
	}
	if cfg.InitialSizeMB < 0 {
		return fmt.Errorf("initial_size_mb must not be negative: %d", cfg.InitialSizeMB)
	}
	return nil
}

// SpacePath returns the full path of the configured space file.
func (cfg *Cfg) SpacePath() string {
	return filepath.Join(cfg.DataDir, cfg.SpaceFile)
}
