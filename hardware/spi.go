package hardware

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// FrameSize is the length of every register transaction on the bus.
const FrameSize = 3

// MaxWordDelay is the longest inter-transfer delay spidev can express
// (a 16-bit microsecond count).
const MaxWordDelay = 65535 * time.Microsecond

// ChannelConfig holds the transfer parameters negotiated on open.
type ChannelConfig struct {
	Mode        spi.Mode
	BitsPerWord uint8
	MaxSpeed    physic.Frequency
	WordDelay   time.Duration
}

// DefaultChannelConfig matches the LMK04828/LMX2594 requirements:
// mode 0, 8-bit words, 1 MHz.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		Mode:        spi.Mode0,
		BitsPerWord: 8,
		MaxSpeed:    1 * physic.MegaHertz,
	}
}

// Channel is an open, configured handle to one chip select.
type Channel interface {
	// Tx performs one full-duplex transfer and returns the number of bytes
	// the driver reports as transferred.
	Tx(w, r []byte) (int, error)
	// Close releases the handle. Calling it more than once is a no-op.
	Close() error
	String() string
}

// Opener opens and configures channels by device path.
type Opener interface {
	Open(path string, cfg ChannelConfig) (Channel, error)
}

// NewOpener returns the opener for the named driver ("spidev" or "periph").
func NewOpener(driver string) (Opener, error) {
	switch driver {
	case "", "spidev":
		return SpidevOpener{}, nil
	case "periph":
		return PeriphOpener{}, nil
	default:
		return nil, fmt.Errorf("unknown SPI driver %q", driver)
	}
}

// Transmit sends one frame and returns the same-length response.
// A failed transfer or one that moved fewer bytes than requested is
// reported as ErrTransaction.
func Transmit(ch Channel, frame []byte) ([]byte, error) {
	rx := make([]byte, len(frame))
	n, err := ch.Tx(frame, rx)
	if err != nil {
		return rx, fmt.Errorf("%w: %s: %w", ErrTransaction, ch, err)
	}
	if n < len(frame) {
		return rx, fmt.Errorf("%w: %s: short transfer, %d of %d bytes", ErrTransaction, ch, n, len(frame))
	}
	return rx, nil
}
