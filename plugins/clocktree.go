package plugins

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/linht/rfclk/clocktree"
)

// ClockTreePlugin exposes the clock bring-up to an operator.
// Hardware access is serialized; a request that finds the bus busy gets 409.
type ClockTreePlugin struct {
	bringUp *clocktree.BringUp

	busy sync.Mutex

	mu   sync.RWMutex
	last *clocktree.Report
}

// ImageSummary describes a loaded register image.
type ImageSummary struct {
	Name       string        `json:"name"`
	Entries    int           `json:"entries"`
	WriteDelay time.Duration `json:"write_delay"`
	First      string        `json:"first"`
	Last       string        `json:"last"`
}

// NewClockTreePlugin creates the plugin. initial may be nil.
func NewClockTreePlugin(b *clocktree.BringUp, initial *clocktree.Report) (*ClockTreePlugin, error) {
	if b == nil {
		return nil, fmt.Errorf("clocktree plugin needs a bring-up")
	}
	slog.Info("Clock tree plugin initializing",
		"conditioner", b.Devices.Conditioner,
		"synthesizer_1", b.Devices.Synthesizers[0],
		"synthesizer_2", b.Devices.Synthesizers[1],
		"readback", b.Readback.Enabled)

	return &ClockTreePlugin{bringUp: b, last: initial}, nil
}

// Name returns the plugin identifier
func (p *ClockTreePlugin) Name() string {
	return "clocktree"
}

// RegisterRoutes adds the plugin's HTTP routes
func (p *ClockTreePlugin) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/clocktree")

	api.Get("/status", p.handleStatus)
	api.Post("/bringup", p.handleBringUp)
	api.Get("/images", p.handleImages)
	api.Get("/conditioner/register/:addr", p.handleReadRegister)

	slog.Info("Clock tree plugin routes registered")
}

// Shutdown waits for a running bring-up to finish.
func (p *ClockTreePlugin) Shutdown() error {
	p.busy.Lock()
	defer p.busy.Unlock()
	return nil
}

func (p *ClockTreePlugin) handleStatus(c *fiber.Ctx) error {
	p.mu.RLock()
	last := p.last
	p.mu.RUnlock()

	if last == nil {
		return SendError(c, 404, errors.New("no bring-up has run"), nil)
	}
	return SendSuccess(c, last, "")
}

func (p *ClockTreePlugin) handleBringUp(c *fiber.Ctx) error {
	if !p.busy.TryLock() {
		return SendError(c, 409, errors.New("bring-up already in progress"), nil)
	}
	defer p.busy.Unlock()

	slog.Info("Bring-up requested", "ip", c.IP())
	report, err := p.bringUp.Run()

	p.mu.Lock()
	p.last = report
	p.mu.Unlock()

	if err != nil {
		return SendError(c, 500, err, report)
	}
	if !report.OK() {
		return SendSuccess(c, report, "Bring-up completed with register write failures")
	}
	return SendSuccess(c, report, "Bring-up completed")
}

func (p *ClockTreePlugin) handleImages(c *fiber.Ctx) error {
	lmk := p.bringUp.Conditioner
	lmx := p.bringUp.Synthesizer
	if lmk == nil || lmx == nil {
		return SendError(c, 500, errors.New("register images not loaded"), nil)
	}
	return SendSuccess(c, []ImageSummary{
		summarize(lmk),
		summarize(lmx),
	}, "")
}

func summarize[E any](img *clocktree.Image[E]) ImageSummary {
	s := ImageSummary{
		Name:       img.Name(),
		Entries:    img.Len(),
		WriteDelay: img.WriteDelay(),
	}
	if img.Len() > 0 {
		s.First = fmt.Sprint(img.At(0))
		s.Last = fmt.Sprint(img.At(img.Len() - 1))
	}
	return s
}

func (p *ClockTreePlugin) handleReadRegister(c *fiber.Ctx) error {
	if !p.bringUp.Readback.Enabled {
		return SendError(c, 403, errors.New("conditioner read-back is disabled"), nil)
	}

	addr, err := strconv.ParseUint(c.Params("addr"), 0, 13)
	if err != nil {
		return SendError(c, 400, fmt.Errorf("invalid register address: %w", err), nil)
	}

	if !p.busy.TryLock() {
		return SendError(c, 409, errors.New("bus busy"), nil)
	}
	defer p.busy.Unlock()

	value, err := p.bringUp.ReadConditioner(uint16(addr))
	if err != nil {
		slog.Error("Failed to read conditioner register", "address", fmt.Sprintf("0x%03X", addr), "error", err)
		return SendError(c, 500, err, nil)
	}

	return SendSuccess(c, map[string]interface{}{
		"address": fmt.Sprintf("0x%03X", addr),
		"value":   value,
		"hex":     fmt.Sprintf("0x%02X", value),
	}, "")
}

// Register the plugin
func init() {
	Register("clocktree", func(env Env) (Plugin, error) {
		return NewClockTreePlugin(env.BringUp, env.Initial)
	})
}
