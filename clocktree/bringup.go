package clocktree

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/linht/rfclk/hardware"
)

// Timing holds the settling delays of a bring-up.
type Timing struct {
	ResetSettle       time.Duration
	ResetPulseWidth   time.Duration
	ConditionerSettle time.Duration
	SynthesizerSettle time.Duration
}

// DefaultTiming returns the delays used on the reference board.
func DefaultTiming() Timing {
	return Timing{
		ResetSettle:       100 * time.Millisecond,
		ConditionerSettle: time.Millisecond,
		SynthesizerSettle: time.Millisecond,
	}
}

// Devices names the bus device path of each chip select.
type Devices struct {
	Conditioner  string
	Synthesizers [2]string
}

// Readback configures the optional identification read after programming.
type Readback struct {
	Enabled  bool
	Address  uint16
	Expected uint8
}

// BringUp runs the whole reset / open / program sequence.
type BringUp struct {
	Lines       hardware.LineDriver
	ControlLine []ControlLine
	Opener      hardware.Opener
	Channel     hardware.ChannelConfig
	Devices     Devices
	Conditioner *Image[Register]
	Synthesizer *Image[Word]
	Timing      Timing
	Readback    Readback
	Logger      *slog.Logger
	Sleep       func(time.Duration)
}

// ReadbackResult is the outcome of the identification read.
type ReadbackResult struct {
	Address  uint16 `json:"address"`
	Value    uint8  `json:"value"`
	Expected uint8  `json:"expected,omitempty"`
	Match    bool   `json:"match"`
	Error    string `json:"error,omitempty"`
}

// Report summarizes a bring-up run.
type Report struct {
	RunID    string          `json:"run_id"`
	Started  time.Time       `json:"started"`
	Duration time.Duration   `json:"duration"`
	Lines    []ControlLine   `json:"lines"`
	Images   []ImageReport   `json:"images"`
	Readback *ReadbackResult `json:"readback,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// OK reports whether the run completed without fatal or write errors.
func (r *Report) OK() bool {
	if r.Error != "" {
		return false
	}
	for _, img := range r.Images {
		if !img.OK() {
			return false
		}
	}
	return true
}

// Run executes the bring-up. Fatal errors (line setup, channel open or
// configuration) abort before any register is written and are returned;
// failed register writes are only recorded in the report.
func (b *BringUp) Run() (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		Lines:   b.ControlLine,
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", report.RunID)
	seq := &Sequencer{Logger: logger, Sleep: b.Sleep}

	err := b.run(seq, report)
	report.Duration = time.Since(report.Started)
	if err != nil {
		report.Error = err.Error()
		logger.Error("Bring-up failed", "error", err, "duration", report.Duration)
		return report, err
	}
	logger.Info("Bring-up complete", "duration", report.Duration, "ok", report.OK())
	return report, nil
}

func (b *BringUp) run(seq *Sequencer, report *Report) error {
	if b.Conditioner == nil || b.Synthesizer == nil {
		return errors.New("register images not loaded")
	}

	logger := seq.logger()
	logger.Info("Initializing control lines", "count", len(b.ControlLine))
	if err := InitializeLines(b.Lines, b.ControlLine, b.Timing.ResetPulseWidth, seq); err != nil {
		return err
	}
	seq.Wait(b.Timing.ResetSettle)

	paths := []string{b.Devices.Conditioner, b.Devices.Synthesizers[0], b.Devices.Synthesizers[1]}
	channels := make([]hardware.Channel, 0, len(paths))
	defer func() {
		for _, ch := range channels {
			if err := ch.Close(); err != nil {
				logger.Warn("Failed to close channel", "device", ch.String(), "error", err)
			}
		}
	}()
	for _, path := range paths {
		ch, err := b.Opener.Open(path, b.Channel)
		if err != nil {
			return err
		}
		logger.Info("Channel configured", "device", ch.String())
		channels = append(channels, ch)
	}
	conditioner, synth1, synth2 := channels[0], channels[1], channels[2]

	report.Images = append(report.Images, Program(seq, conditioner, b.Conditioner, ConditionerCodec{}))
	seq.Wait(b.Timing.ConditionerSettle)

	for _, ch := range []hardware.Channel{synth1, synth2} {
		report.Images = append(report.Images, Program(seq, ch, b.Synthesizer, SynthesizerCodec{}))
		seq.Wait(b.Timing.SynthesizerSettle)
	}

	if b.Readback.Enabled {
		report.Readback = b.readback(conditioner, logger)
	}
	return nil
}

func (b *BringUp) readback(ch hardware.Channel, logger *slog.Logger) *ReadbackResult {
	res := &ReadbackResult{Address: b.Readback.Address, Expected: b.Readback.Expected}
	v, err := ReadConditionerRegister(ch, b.Readback.Address)
	if err != nil {
		res.Error = err.Error()
		logger.Warn("Conditioner read-back failed", "error", err)
		return res
	}
	res.Value = v
	res.Match = b.Readback.Expected == 0 || v == b.Readback.Expected
	if !res.Match {
		logger.Warn("Conditioner read-back mismatch",
			"address", fmt.Sprintf("0x%03X", res.Address),
			"value", fmt.Sprintf("0x%02X", v),
			"expected", fmt.Sprintf("0x%02X", res.Expected))
	} else {
		logger.Info("Conditioner read-back", "address", fmt.Sprintf("0x%03X", res.Address), "value", fmt.Sprintf("0x%02X", v))
	}
	return res
}
