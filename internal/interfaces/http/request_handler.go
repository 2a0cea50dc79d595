package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/application/requests"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

// RequestHandler maneja las solicitudes de insumo.
type RequestHandler struct {
	workflow *requests.Workflow
}

// NewRequestHandler construye el handler.
func NewRequestHandler(workflow *requests.Workflow) *RequestHandler {
	return &RequestHandler{workflow: workflow}
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        unit_id  query  string  false  "Unidad"
// @Param        status   query  string  false  "PENDING | APPROVED | REJECTED"
// @Param        limit    query  int     false  "Tamaño de página"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.RequestListResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	if !page.Normalize() {
		return respondError(c, errInvalidQuery)
	}
	list, err := h.workflow.List(c.UserContext(), repository.RequestFilter{
		UnitID: scopeUnit(c, c.Query("unit_id")),
		Status: c.Query("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.RequestListResponse{
		Items: make([]dto.RequestResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(list)},
	}
	for _, r := range list {
		out.Items = append(out.Items, dto.NewRequestResponse(r))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.workflow.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	// Para roles acotados una solicitud de otra unidad no existe.
	if !canSeeUnit(c, req.UnitID) {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.NewRequestResponse(req))
}

// PendingCount godoc
// @Summary      Cantidad de solicitudes pendientes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PendingCountResponse
// @Router       /api/requests/pending-count [get]
func (h *RequestHandler) PendingCount(c *fiber.Ctx) error {
	n, err := h.workflow.PendingCount(c.UserContext(), scopeUnit(c, c.Query("unit_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PendingCountResponse{Count: n})
}

// Submit godoc
// @Summary      Registrar una solicitud de insumo
// @Description  Queda PENDING; no modifica stock. Para editores la unidad es siempre la propia.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitRequestRequest  true  "unit_id, item_id, quantity, sector_name"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitRequestRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	unitID := in.UnitID
	if !entity.IsGlobalRole(GetRole(c)) {
		unitID = GetUnitID(c)
	}
	req, err := h.workflow.Submit(c.UserContext(), requests.SubmitInput{
		UnitID:      unitID,
		ItemID:      in.ItemID,
		Quantity:    in.Quantity,
		SectorName:  in.SectorName,
		RequestorID: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRequestResponse(req))
}

// Decide godoc
// @Summary      Aprobar o rechazar una solicitud
// @Description  APPROVED debita el stock de la unidad en la misma transacción.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la solicitud"
// @Param        body  body  dto.DecideRequestRequest  true  "decision"
// @Success      200   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/decision [post]
func (h *RequestHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideRequestRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	req, err := h.workflow.Decide(c.UserContext(), requests.DecideInput{
		RequestID: c.Params("id"),
		Decision:  in.Decision,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewRequestResponse(req))
}
