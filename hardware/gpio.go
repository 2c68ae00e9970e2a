package hardware

import "fmt"

// Direction is a control line direction.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// LineDriver is the export / direction / level capability a control line
// backend provides. Lines are addressed by their board-specific number.
type LineDriver interface {
	Export(line int) error
	SetDirection(line int, dir Direction) error
	SetLevel(line int, value int) error
	Close() error
}

// LineDriverConfig selects and parameterizes a LineDriver.
type LineDriverConfig struct {
	Backend   string
	SysfsRoot string
	Chip      string
	ChipBase  int
}

// NewLineDriver returns the driver for cfg.Backend ("sysfs" or "cdev").
func NewLineDriver(cfg LineDriverConfig) (LineDriver, error) {
	switch cfg.Backend {
	case "", "sysfs":
		return NewSysfsLines(cfg.SysfsRoot), nil
	case "cdev":
		return NewCdevLines(cfg.Chip, cfg.ChipBase)
	default:
		return nil, fmt.Errorf("unknown control line backend %q", cfg.Backend)
	}
}
