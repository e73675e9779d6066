// Package simulate stands in for the I/O a real backend would do.
// Every service operation suspends here for a fixed, configurable
// duration before touching the store.
package simulate

import (
	"context"
	"time"

	"github.com/dmarchuk/claimsight/internal/core/ports"
)

type Latency struct {
	perOp      map[ports.Operation]time.Duration
	stageDelay time.Duration
}

type Config struct {
	Upload  time.Duration
	Extract time.Duration
	List    time.Duration
	Reindex time.Duration
	Delete  time.Duration
	Query   time.Duration
	Audit   time.Duration
	Stats   time.Duration

	StageDelay time.Duration
}

// DefaultConfig mirrors the latencies the original prototype shipped
// with.
func DefaultConfig() Config {
	return Config{
		Upload:     500 * time.Millisecond,
		Extract:    800 * time.Millisecond,
		List:       200 * time.Millisecond,
		Reindex:    600 * time.Millisecond,
		Delete:     0,
		Query:      300 * time.Millisecond,
		Audit:      150 * time.Millisecond,
		Stats:      150 * time.Millisecond,
		StageDelay: 400 * time.Millisecond,
	}
}

func New(cfg Config) *Latency {
	return &Latency{
		perOp: map[ports.Operation]time.Duration{
			ports.OpUpload:  cfg.Upload,
			ports.OpExtract: cfg.Extract,
			ports.OpList:    cfg.List,
			ports.OpReindex: cfg.Reindex,
			ports.OpDelete:  cfg.Delete,
			ports.OpQuery:   cfg.Query,
			ports.OpAudit:   cfg.Audit,
			ports.OpStats:   cfg.Stats,
		},
		stageDelay: cfg.StageDelay,
	}
}

// None disables all simulated latency. Used in tests.
func None() *Latency {
	return New(Config{})
}

func (l *Latency) Delay(ctx context.Context, op ports.Operation) error {
	return wait(ctx, l.perOp[op])
}

func (l *Latency) StageDelay() time.Duration {
	return l.stageDelay
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
