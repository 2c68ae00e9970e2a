package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/linht/rfclk/clocktree"
	"github.com/linht/rfclk/config"
	"github.com/linht/rfclk/hardware"
	"github.com/linht/rfclk/plugins"
)

// Server timeouts
const (
	ServerReadTimeout  = 30 * time.Second
	ServerWriteTimeout = 30 * time.Second
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration")
	flag.Parse()

	// Setup structured logging
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err, "path", *configPath)
		os.Exit(1)
	}
	level, err := cfg.Level()
	if err != nil {
		slog.Error("Invalid log level", "error", err, "path", *configPath)
		os.Exit(1)
	}
	logLevel.Set(level)
	slog.Info("Configuration loaded", "path", *configPath)

	lines, err := hardware.NewLineDriver(cfg.LineDriverConfig())
	if err != nil {
		slog.Error("Failed to open control lines", "error", err, "backend", cfg.Lines.Backend)
		os.Exit(1)
	}
	defer lines.Close()

	bringUp, err := newBringUp(cfg, lines, logger)
	if err != nil {
		slog.Error("Failed to prepare bring-up", "error", err)
		lines.Close()
		os.Exit(1)
	}

	report, err := bringUp.Run()
	printSummary(report)
	if err != nil {
		lines.Close()
		os.Exit(1)
	}

	if !cfg.Server.Enabled {
		return
	}
	if err := serve(cfg, bringUp, report); err != nil {
		slog.Error("Server failed", "error", err)
		lines.Close()
		os.Exit(1)
	}
}

func newBringUp(cfg *config.Config, lines hardware.LineDriver, logger *slog.Logger) (*clocktree.BringUp, error) {
	opener, err := hardware.NewOpener(cfg.SPI.Driver)
	if err != nil {
		return nil, err
	}
	lmk, err := cfg.ConditionerImage()
	if err != nil {
		return nil, fmt.Errorf("failed to load conditioner image: %w", err)
	}
	lmx, err := cfg.SynthesizerImage()
	if err != nil {
		return nil, fmt.Errorf("failed to load synthesizer image: %w", err)
	}
	slog.Info("Register images loaded",
		"conditioner", lmk.Len(),
		"synthesizer", lmx.Len())

	return &clocktree.BringUp{
		Lines:       lines,
		ControlLine: cfg.Lines.Items,
		Opener:      opener,
		Channel:     cfg.ChannelConfig(),
		Devices:     cfg.DevicePaths(),
		Conditioner: lmk,
		Synthesizer: lmx,
		Timing:      cfg.BringUpTiming(),
		Readback:    cfg.ReadbackSettings(),
		Logger:      logger,
	}, nil
}

func printSummary(r *clocktree.Report) {
	if r == nil {
		return
	}
	ok := color.New(color.FgGreen, color.Bold).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("Bring-up %s (%s)\n", r.RunID, r.Duration.Round(time.Millisecond))
	for _, img := range r.Images {
		status := ok("OK")
		if !img.OK() {
			status = warn(fmt.Sprintf("%d FAILED", len(img.Failures)))
		}
		fmt.Printf("  %-8s %-16s %3d/%-3d %s\n", img.Image, img.Device, img.Written, img.Attempted, status)
	}
	if rb := r.Readback; rb != nil {
		switch {
		case rb.Error != "":
			fmt.Printf("  read-back 0x%03X: %s\n", rb.Address, bad(rb.Error))
		case !rb.Match:
			fmt.Printf("  read-back 0x%03X = 0x%02X, expected 0x%02X %s\n", rb.Address, rb.Value, rb.Expected, warn("MISMATCH"))
		default:
			fmt.Printf("  read-back 0x%03X = 0x%02X %s\n", rb.Address, rb.Value, ok("OK"))
		}
	}
	if r.Error != "" {
		fmt.Printf("  %s %s\n", bad("FATAL"), r.Error)
	}
}

func serve(cfg *config.Config, bringUp *clocktree.BringUp, report *clocktree.Report) error {
	app := fiber.New(fiber.Config{
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		AppName:      "rfclk",
	})

	app.Use(fiberLogger.New(fiberLogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	loaded, err := initPlugins(app, cfg.Plugins, plugins.Env{BringUp: bringUp, Initial: report})
	defer func() {
		for _, p := range loaded {
			if err := p.Shutdown(); err != nil {
				slog.Error("Plugin shutdown error", "name", p.Name(), "error", err)
			}
		}
	}()
	if err != nil {
		return err
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		slog.Info("Shutting down server...")
		if err := app.ShutdownWithContext(context.Background()); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	slog.Info("Starting operator API", "address", addr)
	return app.Listen(addr)
}

func initPlugins(app *fiber.App, names []string, env plugins.Env) ([]plugins.Plugin, error) {
	var loaded []plugins.Plugin
	for _, name := range names {
		factory, exists := plugins.Get(name)
		if !exists {
			slog.Warn("Unknown plugin", "name", name)
			continue
		}

		plugin, err := factory(env)
		if err != nil {
			return loaded, err
		}

		plugin.RegisterRoutes(app)
		loaded = append(loaded, plugin)
		slog.Info("Plugin loaded", "name", plugin.Name())
	}
	return loaded, nil
}
