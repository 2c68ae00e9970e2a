package clocktree

import (
	"fmt"

	"github.com/linht/rfclk/hardware"
)

// Conditioner identification registers.
const (
	RegDeviceType = 0x003
	RegProduct    = 0x004
	RegMaskRev    = 0x006
)

// ReadConditionerRegister reads one LMK04828 register.
//
// Reads only return data once the device's SDIO readback path is enabled
// by the programmed image; this function does not check for that.
func ReadConditionerRegister(ch hardware.Channel, addr uint16) (uint8, error) {
	frame, err := ConditionerCodec{}.EncodeRead(addr)
	if err != nil {
		return 0, err
	}
	rx, err := hardware.Transmit(ch, frame[:])
	if err != nil {
		return 0, fmt.Errorf("failed to read register 0x%03X: %w", addr, err)
	}
	return rx[2], nil
}

// ReadConditioner opens the conditioner channel, reads addr and closes the
// channel again.
func (b *BringUp) ReadConditioner(addr uint16) (uint8, error) {
	ch, err := b.Opener.Open(b.Devices.Conditioner, b.Channel)
	if err != nil {
		return 0, err
	}
	defer ch.Close()
	return ReadConditionerRegister(ch, addr)
}
