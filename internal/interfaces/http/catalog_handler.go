package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/application/usecase"
)

// UnitHandler maneja las peticiones HTTP de unidades.
type UnitHandler struct {
	uc *usecase.UnitUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(uc *usecase.UnitUseCase) *UnitHandler {
	return &UnitHandler{uc: uc}
}

// Create godoc
// @Summary      Crear unidad
// @Description  Crea la unidad y una entrada de stock en 0 por cada insumo activo.
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitRequest  true  "name, display_order"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/units/:id
func (h *UnitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/units/:id
func (h *UnitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUnitRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/units
func (h *UnitHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/units/:id. 409 si la unidad tiene historial.
func (h *UnitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SupplyItemHandler maneja el catálogo de insumos.
type SupplyItemHandler struct {
	uc *usecase.SupplyItemUseCase
}

// NewSupplyItemHandler construye el handler.
func NewSupplyItemHandler(uc *usecase.SupplyItemUseCase) *SupplyItemHandler {
	return &SupplyItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear insumo
// @Description  Crea el insumo y una entrada de stock en 0 en cada unidad.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyItemRequest  true  "model, color"
// @Success      201   {object}  dto.SupplyItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *SupplyItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/items/:id
func (h *SupplyItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/items/:id
func (h *SupplyItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplyItemRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/items?all=true incluye los inactivos.
func (h *SupplyItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), !c.QueryBool("all", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/items/:id
func (h *SupplyItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SectorHandler maneja los sectores de cada unidad.
type SectorHandler struct {
	uc *usecase.SectorUseCase
}

// NewSectorHandler construye el handler.
func NewSectorHandler(uc *usecase.SectorUseCase) *SectorHandler {
	return &SectorHandler{uc: uc}
}

// Create POST /api/sectors
func (h *SectorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSectorRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/sectors/:id
func (h *SectorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/sectors/:id
func (h *SectorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSectorRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/sectors?unit_id=
func (h *SectorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), scopeUnit(c, c.Query("unit_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/sectors/:id
func (h *SectorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
