package clocktree

import (
	"errors"
	"fmt"
	"time"

	"github.com/linht/rfclk/hardware"
)

var errBus = errors.New("bus error")

// recordChannel records every frame sent through it. Transfers listed in
// fail return errBus; reply, if set, is copied into every receive buffer.
type recordChannel struct {
	name   string
	frames [][]byte
	fail   map[int]bool
	reply  []byte
	log    *[]string
	closed int
}

func (c *recordChannel) Tx(w, r []byte) (int, error) {
	i := len(c.frames)
	c.frames = append(c.frames, append([]byte(nil), w...))
	if c.log != nil {
		*c.log = append(*c.log, fmt.Sprintf("tx %s", c.name))
	}
	if c.fail[i] {
		return 0, errBus
	}
	copy(r, c.reply)
	return len(w), nil
}

func (c *recordChannel) Close() error {
	c.closed++
	return nil
}

func (c *recordChannel) String() string { return c.name }

// fakeOpener hands out recordChannels by path.
type fakeOpener struct {
	channels map[string]*recordChannel
	fail     map[string]error
	opened   []string
}

func newFakeOpener(paths ...string) *fakeOpener {
	o := &fakeOpener{channels: map[string]*recordChannel{}, fail: map[string]error{}}
	for _, p := range paths {
		o.channels[p] = &recordChannel{name: p}
	}
	return o
}

func (o *fakeOpener) Open(path string, cfg hardware.ChannelConfig) (hardware.Channel, error) {
	o.opened = append(o.opened, path)
	if err := o.fail[path]; err != nil {
		return nil, err
	}
	ch, ok := o.channels[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no such device", hardware.ErrChannelOpen, path)
	}
	return ch, nil
}

// recordLines records line driver calls as strings like "export 542".
type recordLines struct {
	calls []string
	fail  string
}

func (l *recordLines) do(call string) error {
	l.calls = append(l.calls, call)
	if call == l.fail {
		return errors.New("permission denied")
	}
	return nil
}

func (l *recordLines) Export(line int) error {
	return l.do(fmt.Sprintf("export %d", line))
}

func (l *recordLines) SetDirection(line int, dir hardware.Direction) error {
	return l.do(fmt.Sprintf("direction %d %s", line, dir))
}

func (l *recordLines) SetLevel(line int, value int) error {
	return l.do(fmt.Sprintf("level %d %d", line, value))
}

func (l *recordLines) Close() error { return nil }

// recordSleep collects requested delays instead of sleeping.
type recordSleep struct {
	delays []time.Duration
	log    *[]string
}

func (s *recordSleep) Sleep(d time.Duration) {
	s.delays = append(s.delays, d)
	if s.log != nil {
		*s.log = append(*s.log, fmt.Sprintf("sleep %s", d))
	}
}
