package types

import "errors"

var (
	// Row store
	ErrRowNotFound   = errors.New("row not found")
	ErrSheetNotFound = errors.New("sheet not found")

	// User-facing domain errors. Messages are part of the API contract
	// and are returned verbatim to the frontend.
	ErrShiftNotFound      = errors.New("Turno no encontrado")
	ErrShiftAlreadyClosed = errors.New("Este turno ya está cerrado")
	ErrInvalidCredentials = errors.New("Usuario o contraseña incorrectos")
	ErrSessionInvalid     = errors.New("Sesión inválida o expirada. Por favor inicia sesión nuevamente.")
	ErrInvalidImage       = errors.New("Imagen inválida")
	ErrUnsupportedFormat  = errors.New("Formato de imagen no soportado. Use data URL base64 (image/jpeg o image/png).")

	// Configuration: the feature is unavailable, not broken (503)
	ErrS3NotConfigured          = errors.New("S3 no está configurado. No se puede subir la foto.")
	ErrSpreadsheetNotConfigured = errors.New("spreadsheet id is not configured")
	ErrBikersSheetNotConfigured = errors.New("CARRERAS_BIKERS_SHEET_ID no está configurado")
	ErrRidesSheetNotConfigured  = errors.New("CARRERAS_DRIVERS_SHEET_ID o CARRERAS_BIKERS_SHEET_ID no está configurado")

	ErrInvalidToken = errors.New("Token inválido o expirado")
)
