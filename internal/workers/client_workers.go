package workers

import (
	"context"
	"time"

	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/service"
)

// NewClientWorkers assembles the agent's background workers: the sync
// agent's connection loop, the periodic resync ticker, and a health
// reporter that logs every connection state transition.
func NewClientWorkers(ctx context.Context, services *service.ClientServices, cfg config.ClientWorkers, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			&agentWorker{ctx: ctx, agent: services.SyncAgent},
			&resyncWorker{ctx: ctx, job: services.SyncJob, interval: cfg.ResyncInterval},
			&healthWorker{ctx: ctx, agent: services.SyncAgent, log: log},
		},
	}
}

// agentWorker launches the sync agent's connection state machine.
type agentWorker struct {
	ctx   context.Context
	agent service.ClientSyncAgent
}

func (w *agentWorker) Run() {
	w.agent.Start(w.ctx)
}

// resyncWorker launches the periodic resync ticker.
type resyncWorker struct {
	ctx      context.Context
	job      service.ClientSyncJob
	interval time.Duration
}

func (w *resyncWorker) Run() {
	w.job.Start(w.ctx, w.interval)
}

// healthWorker surfaces the connection indicator in the logs so a headless
// agent still reports whether changes are flowing.
type healthWorker struct {
	ctx   context.Context
	agent service.ClientSyncAgent
	log   *logger.Logger
}

func (w *healthWorker) Run() {
	updates := w.agent.Subscribe()

	go func() {
		for {
			select {
			case <-w.ctx.Done():
				return
			case health := <-updates:
				w.log.Info().
					Str("state", string(health.State)).
					Bool("connected", health.Connected).
					Msg("connection health")
			}
		}
	}()
}
