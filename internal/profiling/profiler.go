// Package profiling writes pprof profiles for bongo-go and serves the
// expvar and pprof debug endpoints.
package profiling

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	runtimepprof "runtime/pprof"
	"sync"
	"time"
)

// shutdownTimeout bounds how long Stop waits for debug requests to finish.
const shutdownTimeout = 2 * time.Second

// Config holds configuration for the profiler.
type Config struct {
	// CPUProfilePath is the file path for CPU profile output.
	// If empty, CPU profiling is disabled.
	CPUProfilePath string

	// MemProfilePath is the file path for the heap profile written on Stop.
	// If empty, memory profiling is disabled.
	MemProfilePath string

	// DebugAddr is the listen address for /debug/vars and /debug/pprof/.
	// If empty, no server is started.
	DebugAddr string
}

// Enabled returns true if any profiling or debug serving is configured.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != "" || c.DebugAddr != ""
}

// Profiler manages one profiling session.
type Profiler struct {
	cfg      Config
	cpuFile  *os.File
	server   *http.Server
	listener net.Listener
	running  bool
	mu       sync.Mutex
}

// New creates a new Profiler with the given configuration.
// The profiler is not started automatically; call Start() to begin profiling.
func New(cfg Config) *Profiler {
	return &Profiler{cfg: cfg}
}

// Start begins CPU profiling and the debug server, as configured.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return errors.New("profiler is already running")
	}

	if p.cfg.CPUProfilePath != "" {
		f, err := os.Create(p.cfg.CPUProfilePath)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		if err := runtimepprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		p.cpuFile = f
	}

	if p.cfg.DebugAddr != "" {
		ln, err := net.Listen("tcp", p.cfg.DebugAddr)
		if err != nil {
			p.stopCPU()
			return fmt.Errorf("failed to listen on %s: %w", p.cfg.DebugAddr, err)
		}
		p.listener = ln
		p.server = &http.Server{Handler: debugMux(), ReadHeaderTimeout: 5 * time.Second}
		go p.server.Serve(ln)
	}

	p.running = true
	return nil
}

// debugMux serves expvar and pprof without touching http.DefaultServeMux.
func debugMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Addr returns the debug server's listen address, or "" when not serving.
func (p *Profiler) Addr() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listener == nil {
		return ""
	}
	return p.listener.Addr().String()
}

// Stop ends CPU profiling, writes the heap profile and shuts the debug
// server down. Every step runs; their errors are joined.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return errors.New("profiler is not running")
	}
	p.running = false

	var errs []error
	if err := p.stopCPU(); err != nil {
		errs = append(errs, err)
	}
	if p.cfg.MemProfilePath != "" {
		if err := WriteHeapProfile(p.cfg.MemProfilePath); err != nil {
			errs = append(errs, err)
		}
	}
	if p.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := p.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("debug server shutdown: %w", err))
		}
		cancel()
		p.server, p.listener = nil, nil
	}
	return errors.Join(errs...)
}

func (p *Profiler) stopCPU() error {
	if p.cpuFile == nil {
		return nil
	}
	runtimepprof.StopCPUProfile()
	err := p.cpuFile.Close()
	p.cpuFile = nil
	if err != nil {
		return fmt.Errorf("failed to close CPU profile file: %w", err)
	}
	return nil
}

// IsRunning returns true if the profiler is currently running.
func (p *Profiler) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// WriteHeapProfile forces a collection and writes a heap profile to path.
func WriteHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create memory profile file: %w", err)
	}
	defer f.Close()

	if err := runtimepprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}
	return nil
}
