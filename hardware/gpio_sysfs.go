package hardware

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultSysfsRoot is the legacy GPIO class directory.
const DefaultSysfsRoot = "/sys/class/gpio"

// SysfsLines drives lines through the legacy sysfs GPIO interface.
// Exported lines are left exported on Close; they keep their level after
// the process exits.
type SysfsLines struct {
	root string
}

// NewSysfsLines returns a sysfs driver rooted at root.
func NewSysfsLines(root string) *SysfsLines {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &SysfsLines{root: root}
}

func (s *SysfsLines) lineDir(line int) string {
	return filepath.Join(s.root, "gpio"+strconv.Itoa(line))
}

// Export makes line visible under the sysfs root. A line that is already
// exported is left as is.
func (s *SysfsLines) Export(line int) error {
	if _, err := os.Stat(s.lineDir(line)); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat gpio%d: %w", line, err)
	}
	if err := s.write("export", strconv.Itoa(line)); err != nil {
		return fmt.Errorf("failed to export gpio%d: %w", line, err)
	}
	return nil
}

// SetDirection writes "in" or "out" to the line's direction file.
func (s *SysfsLines) SetDirection(line int, dir Direction) error {
	if dir != In && dir != Out {
		return fmt.Errorf("invalid direction %q", dir)
	}
	name := filepath.Join("gpio"+strconv.Itoa(line), "direction")
	if err := s.write(name, string(dir)); err != nil {
		return fmt.Errorf("failed to set gpio%d direction to %s: %w", line, dir, err)
	}
	return nil
}

// SetLevel writes 0 or 1 to the line's value file.
func (s *SysfsLines) SetLevel(line int, value int) error {
	v := "0"
	if value != 0 {
		v = "1"
	}
	name := filepath.Join("gpio"+strconv.Itoa(line), "value")
	if err := s.write(name, v); err != nil {
		return fmt.Errorf("failed to set gpio%d to %s: %w", line, v, err)
	}
	return nil
}

// Close is a no-op. Lines stay exported.
func (s *SysfsLines) Close() error {
	return nil
}

func (s *SysfsLines) write(name, value string) error {
	f, err := os.OpenFile(filepath.Join(s.root, name), os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
