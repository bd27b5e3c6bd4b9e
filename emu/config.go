package emu

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"famicore/emu/log"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"
)

type Config struct {
	Memory  MemoryConfig  `toml:"memory"`
	General GeneralConfig `toml:"general"`

	TraceOut io.WriteCloser `toml:"-"`
}

type MemoryConfig struct {
	// RAMSize is the size of the flat RAM bank, a power of 2. Smaller banks
	// are mirrored across the 64K address space.
	RAMSize int `toml:"ram_size"`

	// LoadAddr is where program images get copied.
	LoadAddr uint16 `toml:"load_addr"`

	// Entry, when non-zero, is written to the reset vector after load.
	// Leave it zero to honor the vector the image carries.
	Entry uint16 `toml:"entry"`
}

type GeneralConfig struct {
	// MaxCycles bounds a run; 0 means run until the CPU halts.
	MaxCycles int64 `toml:"max_cycles"`

	// CharOut, when non-zero, maps a write-only console port at that
	// address. Bytes stored there go to stdout.
	CharOut uint16 `toml:"char_out"`
}

func DefaultConfig() Config {
	return Config{
		Memory: MemoryConfig{
			RAMSize:  0x10000,
			LoadAddr: 0x8000,
		},
		General: GeneralConfig{
			CharOut: 0xF001,
		},
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("famicore")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the famicore config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into famicore config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
