/*
scheduler.go - Debt status reconciliation scheduler

PURPOSE:
  Periodically re-runs the debt status resolver so debts crossing their due
  date get promoted to overdue even when nobody is issuing requests. The
  pass also runs once immediately on start, covering the load-time contract.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - Each tick is idempotent; a tick that changes nothing writes nothing
  - Stop() waits for an in-flight tick to finish

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewDebtScheduler(engine, log)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - ledger/resolver.go: The reconciliation rule
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/finance-ledger/ledger"
)

// DebtScheduler drives the periodic overdue-promotion pass.
type DebtScheduler struct {
	Engine        *ledger.Engine
	Log           zerolog.Logger
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDebtScheduler creates a new scheduler.
func NewDebtScheduler(engine *ledger.Engine, log zerolog.Logger) *DebtScheduler {
	return &DebtScheduler{
		Engine:        engine,
		Log:           log,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan struct{}),
	}
}

// Start begins the scheduler.
func (ds *DebtScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled {
		ds.Log.Info().Msg("debt scheduler disabled, not starting")
		return
	}

	ds.ticker = time.NewTicker(ds.CheckInterval)
	ds.wg.Add(1)

	go ds.run()

	ds.Log.Info().Dur("interval", ds.CheckInterval).Msg("debt scheduler started")
}

// Stop stops the scheduler.
func (ds *DebtScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker != nil {
		ds.ticker.Stop()
		close(ds.stop)
		ds.wg.Wait()
		ds.Log.Info().Msg("debt scheduler stopped")
	}
}

func (ds *DebtScheduler) run() {
	defer ds.wg.Done()

	// Run immediately on start
	ds.reconcile()

	for {
		select {
		case <-ds.ticker.C:
			ds.reconcile()
		case <-ds.stop:
			return
		}
	}
}

func (ds *DebtScheduler) reconcile() {
	promoted, err := ds.Engine.ReconcileDebts(context.Background())
	if err != nil {
		ds.Log.Error().Err(err).Msg("debt reconciliation failed")
		return
	}
	if promoted > 0 {
		ds.Log.Info().Int("promoted", promoted).Msg("debts promoted to overdue")
	}
}

// RunNow triggers an immediate pass (for testing/admin).
func (ds *DebtScheduler) RunNow() {
	ds.reconcile()
}
