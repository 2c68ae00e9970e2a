package clocktree

import (
	"fmt"
	"time"

	"github.com/linht/rfclk/hardware"
)

// LinePolicy says what level a control line is left at.
type LinePolicy string

const (
	// PolicyPulse drives the line high then low, issuing a reset pulse.
	PolicyPulse LinePolicy = "pulse"
	// PolicyHigh holds the line high for the session.
	PolicyHigh LinePolicy = "high"
	// PolicyLow holds the line low for the session.
	PolicyLow LinePolicy = "low"
)

// Valid reports whether p is a known policy.
func (p LinePolicy) Valid() bool {
	switch p {
	case PolicyPulse, PolicyHigh, PolicyLow:
		return true
	}
	return false
}

// ControlLine is a board reset or enable line.
type ControlLine struct {
	Name   string     `yaml:"name" json:"name"`
	Number int        `yaml:"number" json:"number"`
	Policy LinePolicy `yaml:"policy" json:"policy"`
}

// DefaultControlLines are the reset/enable lines of the RFSoC clock board.
func DefaultControlLines() []ControlLine {
	return []ControlLine{
		{Name: "lmk-reset", Number: 542, Policy: PolicyPulse},
		{Name: "line-543", Number: 543, Policy: PolicyLow},
		{Name: "line-547", Number: 547, Policy: PolicyLow},
	}
}

// InitializeLines exports each line, makes it an output and applies its
// policy, in list order. pulseWidth is the high time of a reset pulse. Any
// failure stops the sequence and is reported as hardware.ErrLineSetup.
func InitializeLines(drv hardware.LineDriver, lines []ControlLine, pulseWidth time.Duration, s *Sequencer) error {
	log := s.logger()

	for _, l := range lines {
		if err := drv.Export(l.Number); err != nil {
			return fmt.Errorf("%w: %s: %w", hardware.ErrLineSetup, l.Name, err)
		}
	}
	log.Info("Control lines exported", "count", len(lines))

	for _, l := range lines {
		if err := drv.SetDirection(l.Number, hardware.Out); err != nil {
			return fmt.Errorf("%w: %s: %w", hardware.ErrLineSetup, l.Name, err)
		}
	}
	log.Info("Control line directions set to output")

	for _, l := range lines {
		if err := applyPolicy(drv, l, pulseWidth, s); err != nil {
			return fmt.Errorf("%w: %s: %w", hardware.ErrLineSetup, l.Name, err)
		}
		log.Debug("Control line set", "line", l.Name, "number", l.Number, "policy", l.Policy)
	}

	return nil
}

func applyPolicy(drv hardware.LineDriver, l ControlLine, pulseWidth time.Duration, s *Sequencer) error {
	switch l.Policy {
	case PolicyPulse:
		if err := drv.SetLevel(l.Number, 1); err != nil {
			return err
		}
		s.Wait(pulseWidth)
		return drv.SetLevel(l.Number, 0)
	case PolicyHigh:
		return drv.SetLevel(l.Number, 1)
	case PolicyLow:
		return drv.SetLevel(l.Number, 0)
	default:
		return fmt.Errorf("unknown policy %q", l.Policy)
	}
}
