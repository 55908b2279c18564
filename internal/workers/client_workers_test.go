package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avoronov/go-chore-sync/internal/config"
	"github.com/avoronov/go-chore-sync/internal/logger"
	"github.com/avoronov/go-chore-sync/internal/service"
	"github.com/avoronov/go-chore-sync/models"
)

type stubAgent struct {
	started atomic.Bool
	health  chan service.ConnectionHealth
}

func (s *stubAgent) Start(ctx context.Context) { s.started.Store(true) }
func (s *stubAgent) Stop()                     {}
func (s *stubAgent) Apply(ctx context.Context, mutate func(doc models.Document)) error { return nil }
func (s *stubAgent) Document(ctx context.Context) (models.Document, error) {
	return models.Document{}, nil
}
func (s *stubAgent) SetDeviceField(ctx context.Context, key string, value any) error { return nil }
func (s *stubAgent) Resync()                                                         {}
func (s *stubAgent) Reconnect()                                                      {}
func (s *stubAgent) Health() service.ConnectionHealth                                { return service.ConnectionHealth{} }
func (s *stubAgent) Subscribe() <-chan service.ConnectionHealth                      { return s.health }
func (s *stubAgent) PendingIntent() bool                                             { return false }

type stubJob struct {
	started atomic.Bool
}

func (s *stubJob) Start(ctx context.Context, interval time.Duration) { s.started.Store(true) }
func (s *stubJob) Stop()                                             {}

func TestNewClientWorkers_RunStartsEverything(t *testing.T) {
	agent := &stubAgent{health: make(chan service.ConnectionHealth, 1)}
	job := &stubJob{}
	services := &service.ClientServices{SyncAgent: agent, SyncJob: job}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws := NewClientWorkers(ctx, services, config.ClientWorkers{ResyncInterval: time.Minute}, logger.Nop())
	ws.Run()

	if !agent.started.Load() {
		t.Error("agent was not started")
	}
	if !job.started.Load() {
		t.Error("sync job was not started")
	}
}
