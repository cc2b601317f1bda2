// Package main provides the entry point for go-bongo, a Bongo Cat overlay
// whose paws follow the keyboard. It draws with Ebiten and shapes its
// window through the X11 SHAPE extension.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/opd-ai/go-bongo/internal/config"
	"github.com/opd-ai/go-bongo/internal/profiling"
	"github.com/opd-ai/go-bongo/pkg/bongo"
)

// Version is the current version of bongo-go.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bongo-go", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("c", defaultConfigPath(), "Path to configuration file (YAML, JSON or Lua)")
	initConfig := flags.Bool("init", false, "Write the default configuration to -c and exit")
	version := flags.Bool("v", false, "Print version and exit")
	debug := flags.Bool("debug", false, "Enable debug logging")
	jsonLog := flags.Bool("json-log", false, "Write logs as JSON")
	watch := flags.Bool("watch", false, "Reload when the configuration or sprites change")
	noDecorate := flags.Bool("no-decorate", false, "Skip window shaping and opacity")
	attempts := flags.Int("load-attempts", bongo.DefaultLoadAttempts, "Times to try loading the configuration")
	cpuProfile := flags.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := flags.String("memprofile", "", "Write memory profile to file on exit")
	dumpMask := flags.String("dump-mask", "", "Write the window shape as a PBM image to file and exit")
	debugAddr := flags.String("debug-addr", "", "Serve /debug/vars and /debug/pprof/ on this address")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "bongo-go version %s\n", Version)
		return 0
	}

	if *configPath == "" {
		fmt.Fprintln(stderr, "No configuration file specified. Use -c to specify a config file.")
		return 1
	}

	if *initConfig {
		if err := writeDefaultConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "Error writing configuration: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote default configuration to %s\n", *configPath)
		return 0
	}

	if _, err := os.Stat(*configPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Configuration file not found: %s (create one with -init)\n", *configPath)
		} else {
			fmt.Fprintf(stderr, "Error accessing configuration file %s: %v\n", *configPath, err)
		}
		return 1
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := bongo.NewLogger(stderr, level, *jsonLog)

	opts := bongo.DefaultOptions()
	opts.Logger = logger
	opts.WatchConfig = *watch
	opts.NoDecoration = *noDecorate
	opts.LoadAttempts = *attempts

	b, err := bongo.New(*configPath, &opts)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return 1
	}
	if *dumpMask != "" {
		if err := writeMask(b, *dumpMask); err != nil {
			logger.Error("failed to write mask", "error", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote window shape to %s\n", *dumpMask)
		return 0
	}

	b.SetEventHandler(func(e bongo.Event) {
		logger.Debug("event", "type", e.Type.String(), "message", e.Message)
	})

	prof, err := startProfiling(profiling.Config{
		CPUProfilePath: *cpuProfile,
		MemProfilePath: *memProfile,
		DebugAddr:      *debugAddr,
	}, b, logger)
	if err != nil {
		logger.Error("failed to start profiling", "error", err)
		return 1
	}
	if prof != nil {
		defer func() {
			if err := prof.Stop(); err != nil {
				logger.Warn("profiling shutdown", "error", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	stopReload := reloadOnHangup(b, logger)
	defer stopReload()

	logger.Info("bongo-go starting", "version", Version, "config", *configPath)
	if err := b.Run(ctx); err != nil {
		logger.Error("overlay failed", "error", err)
		return 1
	}

	st := b.Status()
	logger.Info("bongo-go stopped", "presses", st.Presses, "shaped", st.Shaped, "opacity_set", st.OpacitySet)
	return 0
}

// startProfiling starts the profiler when cfg enables it. Metrics are
// published to expvar only when the debug server will expose them.
func startProfiling(cfg profiling.Config, b bongo.Bongo, logger bongo.Logger) (*profiling.Profiler, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if cfg.DebugAddr != "" {
		b.Metrics().RegisterExpvar()
	}
	p := profiling.New(cfg)
	if err := p.Start(); err != nil {
		return nil, err
	}
	if addr := p.Addr(); addr != "" {
		logger.Info("debug server listening", "addr", addr)
	}
	return p, nil
}

// reloadOnHangup reloads b on every SIGHUP until the returned function is called.
func reloadOnHangup(b bongo.Bongo, logger bongo.Logger) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigCh:
				logger.Info("received SIGHUP, reloading configuration")
				if err := b.ReloadConfig(); err != nil {
					logger.Warn("reload failed", "error", err)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// writeMask writes the shape b would apply to path.
func writeMask(b bongo.Bongo, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return b.WriteMask(f)
}

// defaultConfigPath returns $XDG_CONFIG_HOME/go-bongo/config.yaml, or ""
// when no user config directory is known.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "go-bongo", "config.yaml")
}

// writeDefaultConfig writes the default configuration to path, creating its
// directory. An existing file is left untouched.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(config.DefaultFileContent), 0o644)
}
