package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/probekit/speechprobe/internal/bus"
	"github.com/probekit/speechprobe/internal/config"
	"github.com/probekit/speechprobe/internal/probe"
	"github.com/probekit/speechprobe/internal/report"
)

// Daemon periodically re-verifies access to every configured provider and
// answers status queries over the control socket.
type Daemon struct {
	mu       sync.RWMutex
	last     map[string]probe.Outcome
	lastRun  time.Time
	manager  *config.Manager
	reporter report.Reporter

	ctx    context.Context
	cancel context.CancelFunc

	triggerCh chan struct{}
}

func New(r report.Reporter) (*Daemon, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if r == nil {
		r = report.Log{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		last:      make(map[string]probe.Outcome),
		manager:   manager,
		reporter:  r,
		ctx:       ctx,
		cancel:    cancel,
		triggerCh: make(chan struct{}, 1),
	}, nil
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("Daemon: config watch unavailable: %v", err)
	}
	defer d.manager.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully", sig)
		d.cancel()
	}()

	// Close the listener when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	go d.probeLoop()

	log.Printf("Daemon started, listening on socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("Shutdown requested")
				return nil
			}
			log.Printf("Accept error: %v", err)
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

// probeLoop runs one pass at startup, then again on every interval tick or
// trigger command
func (d *Daemon) probeLoop() {
	d.runProbes()

	for {
		interval := d.manager.GetConfig().Daemon.Interval
		select {
		case <-time.After(interval):
			d.runProbes()
		case <-d.triggerCh:
			d.runProbes()
		case <-d.ctx.Done():
			return
		}
	}
}

func (d *Daemon) runProbes() {
	cfg := d.manager.GetConfig()
	providers := cfg.ConfiguredProviders()
	if len(providers) == 0 {
		log.Printf("Daemon: no configured providers to probe")
		return
	}

	for _, name := range providers {
		out := probe.Run(d.ctx, cfg.ToProbeConfig(name))
		d.reporter.Report(out)

		d.mu.Lock()
		d.last[name] = out
		d.lastRun = time.Now()
		d.mu.Unlock()
	}
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}
	cmd := line[0]

	switch cmd {
	case 't':
		d.trigger()
		fmt.Fprint(c, "OK probing\n")
	case 's':
		fmt.Fprintf(c, "STATUS %s\n", d.statusLine())
	case 'v':
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case 'q':
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		log.Printf("Unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}

// trigger requests a probe pass without blocking; a pass already pending is
// enough
func (d *Daemon) trigger() {
	select {
	case d.triggerCh <- struct{}{}:
	default:
	}
}

// statusLine summarizes the last pass as "provider=state" pairs
func (d *Daemon) statusLine() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.last) == 0 {
		return "idle"
	}

	names := make([]string, 0, len(d.last))
	for name := range d.last {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, d.last[name].Status))
	}
	parts = append(parts, fmt.Sprintf("last_run=%s", d.lastRun.Format(time.RFC3339)))
	return strings.Join(parts, " ")
}
