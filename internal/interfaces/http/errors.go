package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/domain"
)

var errInvalidQuery = fmt.Errorf("parámetros de consulta: %w", domain.ErrInvalidInput)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Orden relevante: el primer sentinel que coincide gana.
var errorMappings = []errorMapping{
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrInvalidTransfer, fiber.StatusBadRequest, "INVALID_TRANSFER", "origen y destino deben diferir y la cantidad debe ser positiva"},
	{domain.ErrAlreadyDecided, fiber.StatusConflict, "ALREADY_DECIDED", "la solicitud ya fue decidida"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", "usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado al recurso"},
	{domain.ErrUsernameTaken, fiber.StatusConflict, "USERNAME_TAKEN", "el nombre de usuario ya está registrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "el recurso tiene historial asociado"},
	{domain.ErrPersistence, fiber.StatusServiceUnavailable, "PERSISTENCE_FAILURE", "fallo de almacenamiento, reintente"},
}

// respondError traduce errores de dominio a dto.ErrorResponse. Los fallos de negocio se
// registran en Warn; persistencia y errores desconocidos en Error.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("fallo de persistencia")
		} else if m.status == fiber.StatusConflict {
			log.Warn().Err(err).Str("path", c.Path()).Str("user_id", GetUserID(c)).Msg("operación rechazada")
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "INVALID_BODY"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
