package hardware

import "errors"

var (
	// ErrChannelOpen is returned when a bus device path cannot be opened.
	ErrChannelOpen = errors.New("channel open failed")

	// ErrChannelConfig is returned when mode, word size or clock rate could
	// not be negotiated or did not read back as written.
	ErrChannelConfig = errors.New("channel configuration failed")

	// ErrTransaction is returned for a failed or short transfer.
	ErrTransaction = errors.New("transaction failed")

	// ErrLineSetup is returned when a control line could not be exported,
	// switched to output or driven.
	ErrLineSetup = errors.New("control line setup failed")
)
