package quiz

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Janitor periodically drops idle quiz sessions from a Manager.
type Janitor struct {
	cron    *cron.Cron
	manager *Manager
	logger  *zap.Logger
}

// NewJanitor schedules PurgeExpired on schedule, e.g. "@every 1m".
func NewJanitor(manager *Manager, schedule string, logger *zap.Logger) (*Janitor, error) {
	j := &Janitor{
		cron:    cron.New(),
		manager: manager,
		logger:  logger,
	}

	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return nil, fmt.Errorf("schedule session purge %q: %w", schedule, err)
	}
	return j, nil
}

func (j *Janitor) sweep() {
	if n := j.manager.PurgeExpired(); n > 0 {
		j.logger.Info("purged idle quiz sessions", zap.Int("count", n))
	}
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to return.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}
