package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrNotChecked is reported by Ping before the first probe completes
var ErrNotChecked = errors.New("store health not yet checked")

// Pinger is the store handle being watched
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreMonitor pings the backing store on an interval and caches the result,
// so health checks never wait on the database.
type StoreMonitor struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex

	lastErr     error
	lastChecked time.Time
}

// StoreMonitorConfig holds configuration for the store monitor
type StoreMonitorConfig struct {
	Store    Pinger
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

// NewStoreMonitor creates a new store monitor job
func NewStoreMonitor(cfg StoreMonitorConfig) *StoreMonitor {
	if cfg.Interval == 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreMonitor{
		store:    cfg.Store,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger.With(slog.String("job", "store_monitor")),
		stopCh:   make(chan struct{}),
		lastErr:  ErrNotChecked,
	}
}

// Start begins probing in the background
func (m *StoreMonitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run()
	m.logger.Info("store monitor started", slog.Duration("interval", m.interval))
}

// Stop gracefully stops the monitor
func (m *StoreMonitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopCh)
	m.wg.Wait()
	m.logger.Info("store monitor stopped")
}

func (m *StoreMonitor) run() {
	defer m.wg.Done()

	_ = m.RunOnce(context.Background())

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = m.RunOnce(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

// RunOnce probes the store immediately and records the outcome
func (m *StoreMonitor) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.store.Ping(ctx)

	m.mu.Lock()
	wasHealthy := m.lastErr == nil
	first := errors.Is(m.lastErr, ErrNotChecked)
	m.lastErr = err
	m.lastChecked = time.Now()
	m.mu.Unlock()

	switch {
	case err != nil && (wasHealthy || first):
		m.logger.Error("store unreachable", slog.String("error", err.Error()))
	case err == nil && !wasHealthy && !first:
		m.logger.Info("store reachable")
	}
	return err
}

// Ping reports the result of the most recent probe
func (m *StoreMonitor) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// LastChecked returns when the store was last probed
func (m *StoreMonitor) LastChecked() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastChecked
}

// IsRunning returns whether the monitor is running
func (m *StoreMonitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
