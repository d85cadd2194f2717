package admin

import (
	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/viewset"
)

// registerLogs lists the audit trail and the scheduled job runs.
func registerLogs(s *Site) {
	Register(s, "adminauditlog", ModelAdmin[model.AdminAuditLog]{
		VerboseName: "Registro de auditoría",
		Preload:     []string{"Usuario"},
		ListDisplay: []Column[model.AdminAuditLog]{
			{Name: "created_at", Value: func(m *model.AdminAuditLog) any { return m.CreatedAt }},
			{Name: "usuario", Value: func(m *model.AdminAuditLog) any {
				if m.Usuario == nil {
					return nil
				}
				return m.Usuario.Email
			}},
			{Name: "action", Value: func(m *model.AdminAuditLog) any { return m.Action }},
			{Name: "resource", Value: func(m *model.AdminAuditLog) any { return m.Resource }},
			{Name: "resource_id", Value: func(m *model.AdminAuditLog) any { return m.ResourceID }},
			{Name: "status_code", Value: func(m *model.AdminAuditLog) any { return m.StatusCode }},
		},
		ListFilter:   []string{"action", "resource", "usuario"},
		Relations:    map[string]viewset.Relation{"usuario": {Column: "usuario_id", Table: "usuarios"}},
		SearchFields: []string{"path"},
		Ordering:     []string{"-created_at"},
		ListPerPage:  50,
	})

	Register(s, "cronjoblog", ModelAdmin[model.CronJobLog]{
		VerboseName: "Tareas programadas",
		ListDisplay: []Column[model.CronJobLog]{
			{Name: "job_name", Value: func(m *model.CronJobLog) any { return m.JobName }},
			{Name: "status", Value: func(m *model.CronJobLog) any { return m.Status }},
			{Name: "started_at", Value: func(m *model.CronJobLog) any { return m.StartedAt }},
			{Name: "duration_ms", Value: func(m *model.CronJobLog) any { return m.Duration }},
			{Name: "message", Value: func(m *model.CronJobLog) any { return m.Message }},
		},
		ListFilter:  []string{"job_name", "status"},
		Ordering:    []string{"-started_at"},
		ListPerPage: 50,
	})
}
