package clocktree

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/linht/rfclk/hardware"
)

// WriteFailure records one entry that did not make it onto the bus.
type WriteFailure struct {
	Index int    `json:"index"`
	Entry string `json:"entry"`
	Frame Frame  `json:"frame"`
	Err   error  `json:"-"`
	Error string `json:"error"`
}

// ImageReport is the outcome of replaying one image on one channel.
type ImageReport struct {
	Image     string         `json:"image"`
	Device    string         `json:"device"`
	Attempted int            `json:"attempted"`
	Written   int            `json:"written"`
	Failures  []WriteFailure `json:"failures,omitempty"`
}

// OK reports whether every entry was written.
func (r ImageReport) OK() bool {
	return len(r.Failures) == 0
}

// Sequencer replays register images. Writes are issued one at a time in
// image order and are never acknowledged by the device, so a failed write
// is recorded and the replay continues with the next entry.
type Sequencer struct {
	Logger *slog.Logger
	Sleep  func(time.Duration)
}

func (s *Sequencer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Wait pauses for d using the configured sleep function.
func (s *Sequencer) Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	if s.Sleep == nil {
		time.Sleep(d)
		return
	}
	s.Sleep(d)
}

// Program writes every entry of img to ch through codec, in order.
func Program[E any](s *Sequencer, ch hardware.Channel, img *Image[E], codec Codec[E]) ImageReport {
	log := s.logger().With("image", img.Name(), "device", ch.String())
	report := ImageReport{
		Image:  img.Name(),
		Device: ch.String(),
	}

	for i := 0; i < img.Len(); i++ {
		entry := img.At(i)
		report.Attempted++

		frame, err := codec.Encode(entry)
		if err == nil {
			_, err = hardware.Transmit(ch, frame[:])
		}
		if err != nil {
			log.Warn("Register write failed", "index", i, "entry", fmt.Sprint(entry),
				"frame", fmt.Sprintf("% X", frame[:]), "error", err)
			report.Failures = append(report.Failures, WriteFailure{
				Index: i,
				Entry: fmt.Sprint(entry),
				Frame: frame,
				Err:   err,
				Error: err.Error(),
			})
		} else {
			report.Written++
		}

		s.Wait(img.WriteDelay())
	}

	log.Info("Image programmed", "written", report.Written, "failed", len(report.Failures))
	return report
}
