package service

import (
	"context"
	"sync"
	"time"

	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
)

// clientSyncJob periodically nudges the agent to resync. The WebSocket
// channel normally keeps devices current; the timer is the safety net for
// notifications lost while the link looked healthy.
type clientSyncJob struct {
	agent ClientSyncAgent
	log   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob wires a periodic resync trigger to the given agent.
func NewClientSyncJob(agent ClientSyncAgent, log *logger.Logger) ClientSyncJob {
	return &clientSyncJob{agent: agent, log: log}
}

func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultResyncInterval
	}

	j.mu.Lock()
	if j.cancel != nil {
		j.mu.Unlock()
		j.Stop()
		j.mu.Lock()
	}
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		j.log.Info().Dur("interval", interval).Msg("periodic resync started")

		for {
			select {
			case <-jobCtx.Done():
				j.log.Info().Msg("periodic resync stopped")
				return
			case <-ticker.C:
				j.agent.Resync()
			}
		}
	}()
}

func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
