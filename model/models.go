package model

// All lists every model for AutoMigrate in dependency order.
func All() []interface{} {
	return []interface{}{
		&Rol{},
		&Usuario{},
		&JWTTokenBlacklist{},
		&AdminAuditLog{},
		&CronJobLog{},
		&TipoTitulo{},
		&Persona{},
		&Docente{},
		&NoDocente{},
		&Jefe{},
		&Director{},
		&Departamento{},
		&Area{},
		&Carrera{},
		&Asignatura{},
		&AsignaturaCarrera{},
		&Resolucion{},
		&AsignaturaDocente{},
		&JefeDepartamento{},
		&DirectorCarrera{},
		&Notificacion{},
	}
}
