package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
)

// ErrNotificacionNotFound is returned when the notificacion does not exist
var ErrNotificacionNotFound = errors.New("notificacion not found")

// Designation kinds stored in NotificacionMetadata.Designacion
const (
	DesignacionAsignaturaDocente = "asignatura_docente"
	DesignacionJefeDepartamento  = "jefe_departamento"
)

// NotificationService handles notificaciones addressed to personas
type NotificationService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB, log *zap.Logger) *NotificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationService{db: db, log: log, now: time.Now}
}

// CreateNotificacionRequest represents a request to create a notificacion
type CreateNotificacionRequest struct {
	PersonaID uint
	Mensaje   string
	Tipo      string
	Metadata  *model.NotificacionMetadata
}

// Create stores a new notificacion for a persona
func (s *NotificationService) Create(ctx context.Context, req CreateNotificacionRequest) (*model.Notificacion, error) {
	return create(s.db.WithContext(ctx), req)
}

func create(db *gorm.DB, req CreateNotificacionRequest) (*model.Notificacion, error) {
	n := &model.Notificacion{
		PersonaID: req.PersonaID,
		Mensaje:   req.Mensaje,
		Tipo:      req.Tipo,
	}
	if n.Tipo == "" {
		n.Tipo = model.NotificacionInfo
	}

	if req.Metadata != nil {
		metadataJSON, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		n.Metadata = datatypes.JSON(metadataJSON)
	}

	if err := db.Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notificacion: %w", err)
	}
	return n, nil
}

// MarkAsRead sets leido on one notificacion and returns it
func (s *NotificationService) MarkAsRead(ctx context.Context, id uint) (*model.Notificacion, error) {
	result := s.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("id = ?", id).
		Update("leido", true)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to mark notificacion as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotificacionNotFound
	}

	var n model.Notificacion
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload notificacion: %w", err)
	}
	return &n, nil
}

// MarkAllAsRead marks every unread notificacion of a persona as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, personaID uint) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("persona_id = ? AND leido = ?", personaID, false).
		Update("leido", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notificaciones as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Unread restricts a query to unread notificaciones, of one persona when personaID is set
func Unread(personaID *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("leido = ?", false)
		if personaID != nil {
			db = db.Where("persona_id = ?", *personaID)
		}
		return db
	}
}

// UnreadCount returns the number of unread notificaciones
func (s *NotificationService) UnreadCount(ctx context.Context, personaID *uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Notificacion{}).
		Scopes(Unread(personaID)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notificaciones: %w", err)
	}
	return count, nil
}

// CleanupRead removes read notificaciones older than olderThan
func (s *NotificationService) CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan)

	result := s.db.WithContext(ctx).
		Where("fecha_creacion < ? AND leido = ?", cutoff, true).
		Delete(&model.Notificacion{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cleanup read notificaciones: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.log.Info("cleaned up read notificaciones", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}

// NotifyExpiringDesignations notifies the personas whose active designations
// end within the window and flags those designations as notificado. It
// returns the number of notificaciones created.
func (s *NotificationService) NotifyExpiringDesignations(ctx context.Context, within time.Duration) (int, error) {
	now := s.now()
	limit := now.Add(within)
	created := 0

	var docentes []model.AsignaturaDocente
	err := s.db.WithContext(ctx).
		Preload("Asignatura").Preload("Docente").
		Where("estado = ? AND notificado = ?", model.EstadoActivo, false).
		Where("fecha_de_vencimiento IS NOT NULL AND fecha_de_vencimiento >= ? AND fecha_de_vencimiento <= ?", now, limit).
		Find(&docentes).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query expiring asignatura docentes: %w", err)
	}

	for i := range docentes {
		d := &docentes[i]
		if d.Docente == nil {
			continue
		}
		nombre := ""
		if d.Asignatura != nil {
			nombre = d.Asignatura.Nombre
		}
		msg := fmt.Sprintf("Su designación en la asignatura %s vence el %s.", nombre, d.FechaDeVencimiento.Format("02/01/2006"))
		if err := s.notifyDesignation(ctx, d.Docente.PersonaID, msg, DesignacionAsignaturaDocente, d.ID, *d.FechaDeVencimiento, d); err != nil {
			return created, err
		}
		created++
	}

	var jefes []model.JefeDepartamento
	err = s.db.WithContext(ctx).
		Preload("Departamento").Preload("Jefe").
		Where("estado = ? AND notificado = ?", model.EstadoActivo, false).
		Where("fecha_de_fin IS NOT NULL AND fecha_de_fin >= ? AND fecha_de_fin <= ?", now, limit).
		Find(&jefes).Error
	if err != nil {
		return created, fmt.Errorf("failed to query expiring jefe departamentos: %w", err)
	}

	for i := range jefes {
		j := &jefes[i]
		if j.Jefe == nil {
			continue
		}
		nombre := ""
		if j.Departamento != nil {
			nombre = j.Departamento.Nombre
		}
		msg := fmt.Sprintf("Su designación como jefe del departamento %s vence el %s.", nombre, j.FechaDeFin.Format("02/01/2006"))
		if err := s.notifyDesignation(ctx, j.Jefe.PersonaID, msg, DesignacionJefeDepartamento, j.ID, *j.FechaDeFin, j); err != nil {
			return created, err
		}
		created++
	}

	s.log.Info("notified expiring designations", zap.Int("count", created), zap.Time("until", limit))
	return created, nil
}

// notifyDesignation creates the notice and flags the designation in one transaction.
func (s *NotificationService) notifyDesignation(ctx context.Context, personaID uint, msg, kind string, id uint, vence time.Time, designation any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := create(tx, CreateNotificacionRequest{
			PersonaID: personaID,
			Mensaje:   msg,
			Tipo:      model.NotificacionVencimiento,
			Metadata: &model.NotificacionMetadata{
				Designacion:   kind,
				DesignacionID: id,
				Vencimiento:   vence.Format(time.RFC3339),
			},
		})
		if err != nil {
			return err
		}
		if err := tx.Model(designation).Update("notificado", true).Error; err != nil {
			return fmt.Errorf("failed to flag %s %d: %w", kind, id, err)
		}
		return nil
	})
}
