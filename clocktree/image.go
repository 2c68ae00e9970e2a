package clocktree

import "time"

// Image is an ordered, read-only list of register writes for one device.
// Entries are replayed in the stored order.
type Image[E any] struct {
	name    string
	entries []E
	delay   time.Duration
}

// NewImage copies entries into a new image. delay is the pause inserted
// after every transaction; zero means none.
func NewImage[E any](name string, entries []E, delay time.Duration) *Image[E] {
	return &Image[E]{
		name:    name,
		entries: append([]E(nil), entries...),
		delay:   delay,
	}
}

func (img *Image[E]) Name() string              { return img.name }
func (img *Image[E]) Len() int                  { return len(img.entries) }
func (img *Image[E]) At(i int) E                { return img.entries[i] }
func (img *Image[E]) WriteDelay() time.Duration { return img.delay }

// Entries returns a copy of the image contents.
func (img *Image[E]) Entries() []E {
	return append([]E(nil), img.entries...)
}

// WithWriteDelay returns a copy of img using delay between transactions.
func (img *Image[E]) WithWriteDelay(delay time.Duration) *Image[E] {
	return &Image[E]{name: img.name, entries: img.entries, delay: delay}
}

// DefaultConditionerImage is the built-in LMK04828 image.
func DefaultConditionerImage() *Image[Register] {
	return NewImage("lmk04828", defaultConditionerRegisters, 0)
}

// DefaultSynthesizerImage is the built-in LMX2594 image.
func DefaultSynthesizerImage() *Image[Word] {
	return NewImage("lmx2594", defaultSynthesizerWords, 0)
}
