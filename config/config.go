package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/linht/rfclk/clocktree"
	"github.com/linht/rfclk/hardware"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "config.yaml"

type Config struct {
	LogLevel string         `yaml:"log_level"`
	SPI      SPIConfig      `yaml:"spi"`
	Devices  DevicesConfig  `yaml:"devices"`
	Lines    LinesConfig    `yaml:"lines"`
	Timing   TimingConfig   `yaml:"timing"`
	Images   ImagesConfig   `yaml:"images"`
	Readback ReadbackConfig `yaml:"readback"`
	Server   ServerConfig   `yaml:"server"`
	Plugins  []string       `yaml:"plugins"`
}

type SPIConfig struct {
	Driver      string        `yaml:"driver"`
	Mode        int           `yaml:"mode"`
	BitsPerWord uint8         `yaml:"bits_per_word"`
	SpeedHz     uint32        `yaml:"speed_hz"`
	WordDelay   time.Duration `yaml:"word_delay"`
}

type DevicesConfig struct {
	Conditioner  string   `yaml:"conditioner"`
	Synthesizers []string `yaml:"synthesizers"`
}

type LinesConfig struct {
	Backend    string                  `yaml:"backend"`
	SysfsRoot  string                  `yaml:"sysfs_root"`
	Chip       string                  `yaml:"chip"`
	ChipBase   int                     `yaml:"chip_base"`
	PulseWidth time.Duration           `yaml:"pulse_width"`
	Items      []clocktree.ControlLine `yaml:"items"`
}

type TimingConfig struct {
	ResetSettle           time.Duration `yaml:"reset_settle"`
	ConditionerSettle     time.Duration `yaml:"conditioner_settle"`
	SynthesizerSettle     time.Duration `yaml:"synthesizer_settle"`
	ConditionerWriteDelay time.Duration `yaml:"conditioner_write_delay"`
	SynthesizerWriteDelay time.Duration `yaml:"synthesizer_write_delay"`
}

// ImagesConfig points at vendor hex exports that replace the built-in
// register images. Empty paths keep the built-in tables.
type ImagesConfig struct {
	ConditionerFile string `yaml:"conditioner_file"`
	SynthesizerFile string `yaml:"synthesizer_file"`
}

type ReadbackConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  uint16 `yaml:"address"`
	Expected uint8  `yaml:"expected"`
}

type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
}

// Default returns the configuration of the reference board.
func Default() *Config {
	timing := clocktree.DefaultTiming()
	return &Config{
		LogLevel: "info",
		SPI: SPIConfig{
			Driver:      "spidev",
			Mode:        0,
			BitsPerWord: 8,
			SpeedHz:     1000000,
		},
		Devices: DevicesConfig{
			Conditioner:  "/dev/spidev0.0",
			Synthesizers: []string{"/dev/spidev0.1", "/dev/spidev0.2"},
		},
		Lines: LinesConfig{
			Backend:   "sysfs",
			SysfsRoot: hardware.DefaultSysfsRoot,
			Chip:      "gpiochip0",
			Items:     clocktree.DefaultControlLines(),
		},
		Timing: TimingConfig{
			ResetSettle:       timing.ResetSettle,
			ConditionerSettle: timing.ConditionerSettle,
			SynthesizerSettle: timing.SynthesizerSettle,
		},
		Readback: ReadbackConfig{
			Address:  clocktree.RegDeviceType,
			Expected: 0x06,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Plugins: []string{"clocktree"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be caught later without touching
// hardware.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.SPI.Driver {
	case "spidev", "periph":
	default:
		return fmt.Errorf("spi.driver must be spidev or periph, got %q", c.SPI.Driver)
	}
	if c.SPI.Mode < 0 || c.SPI.Mode > 3 {
		return fmt.Errorf("spi.mode must be 0-3, got %d", c.SPI.Mode)
	}
	if c.SPI.BitsPerWord == 0 {
		return fmt.Errorf("spi.bits_per_word must be set")
	}
	if c.SPI.SpeedHz == 0 {
		return fmt.Errorf("spi.speed_hz must be set")
	}
	if c.SPI.WordDelay < 0 || c.SPI.WordDelay > hardware.MaxWordDelay {
		return fmt.Errorf("spi.word_delay must be 0-%s, got %s", hardware.MaxWordDelay, c.SPI.WordDelay)
	}
	if c.Timing.ResetSettle <= 0 {
		return fmt.Errorf("timing.reset_settle must be positive, got %s", c.Timing.ResetSettle)
	}
	if c.Devices.Conditioner == "" {
		return fmt.Errorf("devices.conditioner must be set")
	}
	if len(c.Devices.Synthesizers) != 2 {
		return fmt.Errorf("devices.synthesizers must list 2 devices, got %d", len(c.Devices.Synthesizers))
	}
	for i, s := range c.Devices.Synthesizers {
		if s == "" {
			return fmt.Errorf("devices.synthesizers[%d] is empty", i)
		}
	}
	switch c.Lines.Backend {
	case "sysfs", "cdev":
	default:
		return fmt.Errorf("lines.backend must be sysfs or cdev, got %q", c.Lines.Backend)
	}
	for i, l := range c.Lines.Items {
		if !l.Policy.Valid() {
			return fmt.Errorf("lines.items[%d] (%s): unknown policy %q", i, l.Name, l.Policy)
		}
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// ChannelConfig returns the SPI transfer parameters.
func (c *Config) ChannelConfig() hardware.ChannelConfig {
	return hardware.ChannelConfig{
		Mode:        spi.Mode(c.SPI.Mode),
		BitsPerWord: c.SPI.BitsPerWord,
		MaxSpeed:    physic.Frequency(c.SPI.SpeedHz) * physic.Hertz,
		WordDelay:   c.SPI.WordDelay,
	}
}

// LineDriverConfig returns the control line backend settings.
func (c *Config) LineDriverConfig() hardware.LineDriverConfig {
	return hardware.LineDriverConfig{
		Backend:   c.Lines.Backend,
		SysfsRoot: c.Lines.SysfsRoot,
		Chip:      c.Lines.Chip,
		ChipBase:  c.Lines.ChipBase,
	}
}

// BringUpTiming returns the settling delays.
func (c *Config) BringUpTiming() clocktree.Timing {
	return clocktree.Timing{
		ResetSettle:       c.Timing.ResetSettle,
		ResetPulseWidth:   c.Lines.PulseWidth,
		ConditionerSettle: c.Timing.ConditionerSettle,
		SynthesizerSettle: c.Timing.SynthesizerSettle,
	}
}

// DevicePaths returns the chip select device paths. Validate must have passed.
func (c *Config) DevicePaths() clocktree.Devices {
	return clocktree.Devices{
		Conditioner:  c.Devices.Conditioner,
		Synthesizers: [2]string{c.Devices.Synthesizers[0], c.Devices.Synthesizers[1]},
	}
}

// ConditionerImage returns the configured or built-in conditioner image.
func (c *Config) ConditionerImage() (*clocktree.Image[clocktree.Register], error) {
	if c.Images.ConditionerFile != "" {
		return clocktree.LoadConditionerImage(c.Images.ConditionerFile, c.Timing.ConditionerWriteDelay)
	}
	return clocktree.DefaultConditionerImage().WithWriteDelay(c.Timing.ConditionerWriteDelay), nil
}

// SynthesizerImage returns the configured or built-in synthesizer image.
func (c *Config) SynthesizerImage() (*clocktree.Image[clocktree.Word], error) {
	if c.Images.SynthesizerFile != "" {
		return clocktree.LoadSynthesizerImage(c.Images.SynthesizerFile, c.Timing.SynthesizerWriteDelay)
	}
	return clocktree.DefaultSynthesizerImage().WithWriteDelay(c.Timing.SynthesizerWriteDelay), nil
}

// ReadbackSettings returns the identification read settings.
func (c *Config) ReadbackSettings() clocktree.Readback {
	return clocktree.Readback{
		Enabled:  c.Readback.Enabled,
		Address:  c.Readback.Address,
		Expected: c.Readback.Expected,
	}
}
