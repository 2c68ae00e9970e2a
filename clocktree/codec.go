package clocktree

import (
	"fmt"

	"github.com/linht/rfclk/hardware"
)

// Frame is one 24-bit register transaction, MSB first.
type Frame [hardware.FrameSize]byte

// Codec turns an image entry into a wire frame.
type Codec[E any] interface {
	Encode(entry E) (Frame, error)
}

// LMK04828 framing: R/W, W1, W0, A12..A0, D7..D0.
const (
	conditionerRead     = 0x80 // R/W = 1
	conditionerAddrHigh = 0x1F // A12..A8 in byte 0; W1/W0 stay 0
	conditionerMaxAddr  = 0x1FFF
)

// Register is one conditioner write.
type Register struct {
	Address uint16
	Value   uint8
}

func (r Register) String() string {
	return fmt.Sprintf("0x%04X=0x%02X", r.Address, r.Value)
}

// ConditionerCodec implements the LMK04828 register format.
type ConditionerCodec struct{}

// Encode builds a write frame. Addresses wider than 13 bits are rejected.
func (ConditionerCodec) Encode(r Register) (Frame, error) {
	if r.Address > conditionerMaxAddr {
		return Frame{}, fmt.Errorf("conditioner address 0x%04X exceeds 13 bits", r.Address)
	}
	return Frame{
		byte(r.Address>>8) & conditionerAddrHigh,
		byte(r.Address),
		r.Value,
	}, nil
}

// EncodeRead builds a read frame for addr. The data byte is sent as 0x00;
// the register value arrives in byte 2 of the response.
func (ConditionerCodec) EncodeRead(addr uint16) (Frame, error) {
	if addr > conditionerMaxAddr {
		return Frame{}, fmt.Errorf("conditioner address 0x%04X exceeds 13 bits", addr)
	}
	return Frame{
		conditionerRead | byte(addr>>8)&conditionerAddrHigh,
		byte(addr),
		0x00,
	}, nil
}

// Decode splits a frame back into its register and R/W bit.
func (ConditionerCodec) Decode(f Frame) (r Register, read bool) {
	return Register{
		Address: uint16(f[0]&conditionerAddrHigh)<<8 | uint16(f[1]),
		Value:   f[2],
	}, f[0]&conditionerRead != 0
}

// LMX2594 framing: R/W, A6..A0, D15..D0 in one 24-bit word.
const (
	synthesizerRead    = 1 << 23 // R/W = 1
	synthesizerMaxWord = 1<<24 - 1
)

// Word is a packed LMX2594 shift-register word.
type Word uint32

// PackWord builds a write word for a 7-bit address and 16-bit data.
func PackWord(addr uint8, data uint16) Word {
	return Word(addr&0x7F)<<16 | Word(data)
}

// ReadWord builds a read word for addr.
func ReadWord(addr uint8) Word {
	return synthesizerRead | PackWord(addr, 0)
}

func (w Word) Address() uint8 { return uint8(w>>16) & 0x7F }
func (w Word) Data() uint16   { return uint16(w) }
func (w Word) IsRead() bool   { return w&synthesizerRead != 0 }

func (w Word) String() string {
	return fmt.Sprintf("0x%06X", uint32(w))
}

// SynthesizerCodec implements the LMX2594 register format. Words arrive
// pre-packed, so encoding is a big-endian split.
type SynthesizerCodec struct{}

// Encode splits w into three bytes. Words wider than 24 bits are rejected.
func (SynthesizerCodec) Encode(w Word) (Frame, error) {
	if w > synthesizerMaxWord {
		return Frame{}, fmt.Errorf("synthesizer word 0x%X exceeds 24 bits", uint32(w))
	}
	return Frame{byte(w >> 16), byte(w >> 8), byte(w)}, nil
}

// Decode joins a frame back into a word.
func (SynthesizerCodec) Decode(f Frame) Word {
	return Word(f[0])<<16 | Word(f[1])<<8 | Word(f[2])
}
