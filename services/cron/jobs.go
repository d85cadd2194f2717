package cron

import (
	"context"
	"fmt"
)

// NotifyExpiringDesignations notifies personas whose designations end within
// the notice window. Runs daily at 07:00.
func (m *CronManager) NotifyExpiringDesignations(ctx context.Context) (string, error) {
	created, err := m.notifications.NotifyExpiringDesignations(ctx, m.cfg.NoticeWindow)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created %d notificaciones", created), nil
}

// CleanupExpiredTokens removes blacklist rows whose tokens have expired. Runs hourly.
func (m *CronManager) CleanupExpiredTokens(ctx context.Context) (string, error) {
	removed, err := m.blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to cleanup token blacklist: %w", err)
	}
	return fmt.Sprintf("Removed %d expired tokens", removed), nil
}

// CleanupReadNotificaciones removes old read notificaciones. Runs weekly.
func (m *CronManager) CleanupReadNotificaciones(ctx context.Context) (string, error) {
	removed, err := m.notifications.CleanupRead(ctx, m.cfg.ReadRetention)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed %d read notificaciones", removed), nil
}
