package model

import "time"

// Audit actions.
const (
	AccionLoginSuccess        = "LOGIN_SUCCESS"
	AccionRegisterSuccess     = "REGISTER_SUCCESS"
	AccionUserUpdate          = "USER_UPDATE"
	AccionCambioPassword      = "CAMBIO_PASSWORD"
	AccionCambioPasswordAdmin = "CAMBIO_PASSWORD_ADMIN"
	AccionCrearLinea          = "CREAR_LINEA_INVESTIGACION"
	AccionActualizarLinea     = "ACTUALIZAR_LINEA_INVESTIGACION"
	AccionCrearPeriodo        = "CREAR_PERIODO"
	AccionActualizarPeriodo   = "ACTUALIZAR_PERIODO"
	AccionCrearTrabajo        = "CREAR_TRABAJO"
	AccionActualizarTrabajo   = "ACTUALIZAR_TRABAJO"
	AccionGenerarEstadisticas = "GENERAR_ESTADISTICAS"
	AccionGenerarReporte      = "GENERAR_REPORTE"
)

// Bitacora is an append-only audit entry. Rows are never updated.
type Bitacora struct {
	ID        uint   `gorm:"primaryKey"`
	UsuarioID uint   `gorm:"index;not null"`
	Accion    string `gorm:"type:varchar(60);not null"`
	Mensaje   string `gorm:"type:text;not null"`
	IP        *string
	CreatedAt time.Time
}

func (Bitacora) TableName() string { return "bitacoras" }
