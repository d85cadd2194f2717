package router

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/services"
	"github.com/facet-unt/departamentos-api/services/storage"
)

// Deps carries what the resource routers need to build their viewsets.
type Deps struct {
	DB            *gorm.DB
	Storage       storage.Storage
	Notifications *services.NotificationService
	PageSize      int
}
