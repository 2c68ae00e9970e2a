package hardware

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var openDevice = func(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR, 0)
}

// spidev mode flags, include/uapi/linux/spi/spi.h.
const (
	spidevCPHA      = 0x01
	spidevCPOL      = 0x02
	spidevLSBFirst  = 0x08
	spidevThreeWire = 0x10
	spidevNoCS      = 0x40

	spidevModeMask = spidevCPHA | spidevCPOL | spidevLSBFirst | spidevThreeWire | spidevNoCS
)

// SpidevOpener opens /dev/spidevB.C nodes directly. Each parameter is
// written and then read back; a mismatch fails the open.
type SpidevOpener struct{}

// SpidevChannel is a channel on a raw spidev file descriptor.
type SpidevChannel struct {
	f      *os.File
	device string
	cfg    ChannelConfig
}

// Open opens device and configures mode, word size and clock rate in that
// order. The file is closed again on any configuration error.
func (SpidevOpener) Open(device string, cfg ChannelConfig) (Channel, error) {
	if cfg.WordDelay < 0 || cfg.WordDelay > MaxWordDelay {
		return nil, fmt.Errorf("%w: %s: word delay %s out of range 0-%s", ErrChannelConfig, device, cfg.WordDelay, MaxWordDelay)
	}
	f, err := openDevice(device)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrChannelOpen, device, err)
	}

	ch := &SpidevChannel{f: f, device: device, cfg: cfg}
	if err := ch.configure(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrChannelConfig, device, err)
	}
	return ch, nil
}

func (c *SpidevChannel) configure() error {
	fd := c.f.Fd()

	mode := spidevMode(c.cfg.Mode)
	if _, err := ioctl(fd, spiIOCWrMode32, unsafe.Pointer(&mode)); err != nil {
		return fmt.Errorf("can't set SPI mode: %w", err)
	}
	var gotMode uint32
	if _, err := ioctl(fd, spiIOCRdMode32, unsafe.Pointer(&gotMode)); err != nil {
		return fmt.Errorf("can't get SPI mode: %w", err)
	}
	if gotMode&spidevModeMask != mode {
		return fmt.Errorf("SPI mode read back 0x%02X, want 0x%02X", gotMode&spidevModeMask, mode)
	}

	bits := c.cfg.BitsPerWord
	if _, err := ioctl(fd, spiIOCWrBitsPerWord, unsafe.Pointer(&bits)); err != nil {
		return fmt.Errorf("can't set bits per word: %w", err)
	}
	var gotBits uint8
	if _, err := ioctl(fd, spiIOCRdBitsPerWord, unsafe.Pointer(&gotBits)); err != nil {
		return fmt.Errorf("can't get bits per word: %w", err)
	}
	if gotBits != bits {
		return fmt.Errorf("bits per word read back %d, want %d", gotBits, bits)
	}

	speed := uint32(c.cfg.MaxSpeed / physic.Hertz)
	if _, err := ioctl(fd, spiIOCWrMaxSpeedHz, unsafe.Pointer(&speed)); err != nil {
		return fmt.Errorf("can't set max speed: %w", err)
	}
	var gotSpeed uint32
	if _, err := ioctl(fd, spiIOCRdMaxSpeedHz, unsafe.Pointer(&gotSpeed)); err != nil {
		return fmt.Errorf("can't get max speed: %w", err)
	}
	if gotSpeed != speed {
		return fmt.Errorf("max speed read back %d Hz, want %d Hz", gotSpeed, speed)
	}

	return nil
}

// spidevMode translates a periph mode into spidev mode bits.
func spidevMode(m spi.Mode) uint32 {
	var v uint32
	switch m & 3 {
	case spi.Mode1:
		v = spidevCPHA
	case spi.Mode2:
		v = spidevCPOL
	case spi.Mode3:
		v = spidevCPOL | spidevCPHA
	}
	if m&spi.LSBFirst != 0 {
		v |= spidevLSBFirst
	}
	if m&spi.HalfDuplex != 0 {
		v |= spidevThreeWire
	}
	if m&spi.NoCS != 0 {
		v |= spidevNoCS
	}
	return v
}

// Tx issues a single SPI_IOC_MESSAGE(1) and returns the byte count the
// driver reports.
func (c *SpidevChannel) Tx(w, r []byte) (int, error) {
	if len(w) != len(r) {
		return 0, fmt.Errorf("tx and rx buffers must be the same length")
	}
	if c.f == nil {
		return 0, fmt.Errorf("SPI device not open")
	}
	if len(w) == 0 {
		return 0, nil
	}

	tr := spiIOCTransfer{
		txBuf:      uint64(uintptr(unsafe.Pointer(&w[0]))),
		rxBuf:      uint64(uintptr(unsafe.Pointer(&r[0]))),
		length:     uint32(len(w)),
		delayUsecs: uint16(c.cfg.WordDelay.Microseconds()),
	}
	n, err := ioctl(c.f.Fd(), spiIOCMessage1, unsafe.Pointer(&tr))
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close closes the file descriptor once.
func (c *SpidevChannel) Close() error {
	if c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	return err
}

func (c *SpidevChannel) String() string {
	if c.f == nil {
		return fmt.Sprintf("%s (closed)", c.device)
	}
	return fmt.Sprintf("%s (spidev, %s)", c.device, c.cfg.MaxSpeed)
}
