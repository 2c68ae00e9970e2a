package hardware

import (
	"fmt"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// PeriphOpener opens channels through the periph.io SPI registry.
//
// periph does not expose the negotiated parameters, so a failed Connect is
// the only configuration error this driver can report.
type PeriphOpener struct{}

// PeriphChannel is a channel backed by a periph.io port.
type PeriphChannel struct {
	conn   spi.Conn
	port   spi.PortCloser
	device string
	cfg    ChannelConfig
}

// Open initializes periph.io and connects to device with cfg.
func (PeriphOpener) Open(device string, cfg ChannelConfig) (Channel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: failed to initialize periph.io: %w", ErrChannelOpen, err)
	}

	port, err := spireg.Open(device)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrChannelOpen, device, err)
	}

	conn, err := port.Connect(cfg.MaxSpeed, cfg.Mode, int(cfg.BitsPerWord))
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("%w: %s: mode %d, %d bits, %s: %w",
			ErrChannelConfig, device, cfg.Mode, cfg.BitsPerWord, cfg.MaxSpeed, err)
	}

	return &PeriphChannel{
		conn:   conn,
		port:   port,
		device: device,
		cfg:    cfg,
	}, nil
}

// Tx performs a full-duplex transfer. periph reports no byte count, so a
// successful transfer is taken as complete.
func (c *PeriphChannel) Tx(w, r []byte) (int, error) {
	if len(w) != len(r) {
		return 0, fmt.Errorf("tx and rx buffers must be the same length")
	}
	if c.conn == nil {
		return 0, fmt.Errorf("SPI device not open")
	}
	if err := c.conn.Tx(w, r); err != nil {
		return 0, err
	}
	return len(w), nil
}

// Close closes the port.
func (c *PeriphChannel) Close() error {
	if c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	c.conn = nil
	return err
}

func (c *PeriphChannel) String() string {
	if c.conn == nil {
		return fmt.Sprintf("%s (closed)", c.device)
	}
	return fmt.Sprintf("%s (periph, %s)", c.device, c.cfg.MaxSpeed)
}
