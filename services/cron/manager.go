package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/services"
	"github.com/facet-unt/departamentos-api/utils/auth"
)

// Job schedules, seconds first
const (
	ScheduleNotifyExpiring    = "0 0 7 * * *"
	ScheduleCleanupTokens     = "0 0 * * * *"
	ScheduleCleanupReadNotifs = "0 30 3 * * 0"
)

// Config tunes the scheduled jobs
type Config struct {
	// NoticeWindow is how far ahead expiring designations are notified.
	NoticeWindow time.Duration
	// ReadRetention is how long read notificaciones are kept.
	ReadRetention time.Duration
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron          *cron.Cron
	db            *gorm.DB
	log           *zap.Logger
	notifications *services.NotificationService
	blacklist     *auth.BlacklistService
	cfg           Config
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, log *zap.Logger, notifications *services.NotificationService, cfg Config) *CronManager {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.NoticeWindow <= 0 {
		cfg.NoticeWindow = 30 * 24 * time.Hour
	}
	if cfg.ReadRetention <= 0 {
		cfg.ReadRetention = 90 * 24 * time.Hour
	}

	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger)))

	return &CronManager{
		cron:          c,
		db:            db,
		log:           log.Named("cron"),
		notifications: notifications,
		blacklist:     auth.NewBlacklistService(db),
		cfg:           cfg,
	}
}

// Start registers all jobs and starts the scheduler
func (m *CronManager) Start() error {
	m.log.Info("starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}
	m.cron.Start()

	m.log.Info("cron jobs started", zap.Int("jobs", len(m.cron.Entries())))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (m *CronManager) Stop() {
	m.log.Info("stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron jobs stopped")
}

type job struct {
	name     string
	schedule string
	run      func(ctx context.Context) (string, error)
	timeout  time.Duration
}

func (m *CronManager) jobs() []job {
	return []job{
		{name: "notify_expiring_designations", schedule: ScheduleNotifyExpiring, run: m.NotifyExpiringDesignations, timeout: 5 * time.Minute},
		{name: "cleanup_expired_tokens", schedule: ScheduleCleanupTokens, run: m.CleanupExpiredTokens, timeout: time.Minute},
		{name: "cleanup_read_notificaciones", schedule: ScheduleCleanupReadNotifs, run: m.CleanupReadNotificaciones, timeout: 5 * time.Minute},
	}
}

// JobNames lists the scheduled jobs in registration order.
func (m *CronManager) JobNames() []string {
	var names []string
	for _, j := range m.jobs() {
		names = append(names, j.name)
	}
	return names
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	for _, j := range m.jobs() {
		j := j
		if _, err := m.cron.AddFunc(j.schedule, func() { m.Run(j.name) }); err != nil {
			return fmt.Errorf("failed to register %s: %w", j.name, err)
		}
	}
	return nil
}

// Run executes a job by name now, recording it in cron_job_logs.
func (m *CronManager) Run(name string) error {
	for _, j := range m.jobs() {
		if j.name != name {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		entry := m.logJobStart(j.name)
		msg, err := j.run(ctx)
		if err != nil {
			m.logJobError(entry, err)
			return err
		}
		m.logJobComplete(entry, msg)
		return nil
	}
	return fmt.Errorf("unknown cron job %q", name)
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	m.log.Info("starting job", zap.String("job", jobName))

	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronStatusRunning,
		StartedAt: time.Now(),
	}
	if err := m.db.Create(entry).Error; err != nil {
		m.log.Warn("failed to record job start", zap.String("job", jobName), zap.Error(err))
	}
	return entry
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(entry *model.CronJobLog, message string) {
	m.log.Info("completed job", zap.String("job", entry.JobName), zap.String("message", message))
	m.finish(entry, map[string]interface{}{
		"status":  model.CronStatusCompleted,
		"message": message,
	})
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(entry *model.CronJobLog, err error) {
	m.log.Error("job failed", zap.String("job", entry.JobName), zap.Error(err))
	m.finish(entry, map[string]interface{}{
		"status":    model.CronStatusFailed,
		"error_msg": err.Error(),
	})
}

func (m *CronManager) finish(entry *model.CronJobLog, updates map[string]interface{}) {
	if entry.ID == 0 {
		return
	}
	now := time.Now()
	updates["completed_at"] = now
	updates["duration"] = now.Sub(entry.StartedAt).Milliseconds()
	if err := m.db.Model(entry).Updates(updates).Error; err != nil {
		m.log.Warn("failed to record job end", zap.String("job", entry.JobName), zap.Error(err))
	}
}
