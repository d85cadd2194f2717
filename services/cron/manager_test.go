package cron

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/services"
	"github.com/facet-unt/departamentos-api/utils/testutil"
)

func TestSchedulesParse(t *testing.T) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for _, spec := range []string{ScheduleNotifyExpiring, ScheduleCleanupTokens, ScheduleCleanupReadNotifs} {
		_, err := parser.Parse(spec)
		assert.NoError(t, err, spec)
	}

	daily, err := parser.Parse(ScheduleNotifyExpiring)
	require.NoError(t, err)
	next := daily.Next(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 2, 7, 0, 0, 0, time.UTC), next)
}

func TestRunRecordsJobLog(t *testing.T) {
	db := testutil.NewDB(t)
	m := NewCronManager(db, nil, services.NewNotificationService(db, nil), Config{})

	require.NoError(t, m.Run("cleanup_expired_tokens"))

	var logs []model.CronJobLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "cleanup_expired_tokens", logs[0].JobName)
	assert.Equal(t, model.CronStatusCompleted, logs[0].Status)
	assert.Equal(t, "Removed 0 expired tokens", logs[0].Message)
	assert.NotNil(t, logs[0].CompletedAt)

	assert.Error(t, m.Run("nope"))
}

func TestRegisterJobs(t *testing.T) {
	db := testutil.NewDB(t)
	m := NewCronManager(db, nil, services.NewNotificationService(db, nil), Config{})
	require.NoError(t, m.registerJobs())
	assert.Len(t, m.cron.Entries(), 3)
}
