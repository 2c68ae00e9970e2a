package hardware

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevLines drives lines through the GPIO character device. Line numbers
// are global; base is subtracted to get the chip offset. Requested lines
// are held until Close, which hands them back to the kernel: unlike sysfs,
// levels are not guaranteed to survive Close or process exit. Use the
// sysfs backend when the lines must stay driven after bring-up.
type CdevLines struct {
	chip     *gpiocdev.Chip
	chipPath string
	base     int
	lines    map[int]*gpiocdev.Line
}

// NewCdevLines opens chipPath.
func NewCdevLines(chipPath string, base int) (*CdevLines, error) {
	chip, err := gpiocdev.NewChip(chipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open GPIO chip %s: %w", chipPath, err)
	}
	return &CdevLines{
		chip:     chip,
		chipPath: chipPath,
		base:     base,
		lines:    make(map[int]*gpiocdev.Line),
	}, nil
}

func (c *CdevLines) offset(line int) (int, error) {
	if c.chip == nil {
		return 0, fmt.Errorf("GPIO chip %s is closed", c.chipPath)
	}
	off := line - c.base
	if off < 0 || off >= c.chip.Lines() {
		return 0, fmt.Errorf("line %d is outside %s (base %d, %d lines)", line, c.chipPath, c.base, c.chip.Lines())
	}
	return off, nil
}

// Export requests the line as an input.
func (c *CdevLines) Export(line int) error {
	if _, ok := c.lines[line]; ok {
		return nil
	}
	off, err := c.offset(line)
	if err != nil {
		return err
	}
	l, err := c.chip.RequestLine(off,
		gpiocdev.AsInput,
		gpiocdev.WithConsumer(fmt.Sprintf("rfclk-%d", line)),
	)
	if err != nil {
		return fmt.Errorf("failed to request line %d: %w", line, err)
	}
	c.lines[line] = l
	return nil
}

// SetDirection reconfigures a requested line. Outputs start low.
func (c *CdevLines) SetDirection(line int, dir Direction) error {
	l, ok := c.lines[line]
	if !ok {
		return fmt.Errorf("line %d not exported", line)
	}
	var err error
	switch dir {
	case Out:
		err = l.Reconfigure(gpiocdev.AsOutput(0))
	case In:
		err = l.Reconfigure(gpiocdev.AsInput)
	default:
		return fmt.Errorf("invalid direction %q", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to set line %d direction to %s: %w", line, dir, err)
	}
	return nil
}

// SetLevel drives a line configured as output.
func (c *CdevLines) SetLevel(line int, value int) error {
	l, ok := c.lines[line]
	if !ok {
		return fmt.Errorf("line %d not exported", line)
	}
	if value != 0 {
		value = 1
	}
	if err := l.SetValue(value); err != nil {
		return fmt.Errorf("failed to set line %d to %d: %w", line, value, err)
	}
	return nil
}

// Close releases all requested lines and the chip.
func (c *CdevLines) Close() error {
	var errs []error

	for n, l := range c.lines {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close line %d: %w", n, err))
		}
		delete(c.lines, n)
	}

	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close GPIO chip: %w", err))
		}
		c.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing GPIO: %v", errs)
	}
	return nil
}
