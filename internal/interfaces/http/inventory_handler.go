package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

// InventoryHandler maneja stock, historial y transferencias (protegido).
type InventoryHandler struct {
	ledger        *inventory.StockLedger
	transfers     *inventory.TransferCoordinator
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.StockLedger,
	transfers *inventory.TransferCoordinator,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, transfers: transfers, replenishment: replenishment}
}

// ListStock godoc
// @Summary      Entradas de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        unit_id  query  string  false  "Unidad (ignorado para roles acotados)"
// @Param        item_id  query  string  false  "Insumo"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	entries, err := h.ledger.GetEntries(c.UserContext(), repository.StockFilter{
		UnitID: scopeUnit(c, c.Query("unit_id")),
		ItemID: c.Query("item_id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.StockListResponse{Total: len(entries), Items: make([]dto.StockEntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Items = append(out.Items, dto.NewStockEntryResponse(e))
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Entradas en o bajo el umbral de alerta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        unit_id  query  string  false  "Unidad"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock/low [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	entries, err := h.ledger.GetLowStock(c.UserContext(), scopeUnit(c, c.Query("unit_id")))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.StockListResponse{Total: len(entries), Items: make([]dto.StockEntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Items = append(out.Items, dto.NewStockEntryResponse(e))
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Entradas en alerta con cantidad sugerida de pedido, primero las agotadas.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        unit_id  query  string  false  "Unidad. Vacío = todas (solo roles globales)."
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), scopeUnit(c, c.Query("unit_id")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// Adjust godoc
// @Summary      Aplicar un cambio de cantidad
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "unit_id, item_id, delta, type, reason"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	rec, err := h.ledger.ApplyDelta(c.UserContext(), inventory.DeltaInput{
		UnitID:  in.UnitID,
		ItemID:  in.ItemID,
		Delta:   in.Delta,
		ActorID: GetUserID(c),
		Type:    in.Type,
		Reason:  in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(rec))
}

// UpdateMinAlert godoc
// @Summary      Cambiar el umbral de alerta de una entrada
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.MinStockAlertRequest  true  "unit_id, item_id, min_stock_alert"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/min-alert [put]
func (h *InventoryHandler) UpdateMinAlert(c *fiber.Ctx) error {
	var in dto.MinStockAlertRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if err := h.ledger.UpdateMinStockAlert(c.UserContext(), in.UnitID, in.ItemID, in.MinStockAlert); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transfer godoc
// @Summary      Transferir insumo entre unidades
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "source_unit_id, dest_unit_id, item_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.transfers.Transfer(c.UserContext(), inventory.TransferInput{
		SourceUnitID: in.SourceUnitID,
		DestUnitID:   in.DestUnitID,
		ItemID:       in.ItemID,
		Quantity:     in.Quantity,
		ActorID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		CorrelationID: res.CorrelationID,
		Debit:         dto.NewTransactionResponse(res.Debit),
		Credit:        dto.NewTransactionResponse(res.Credit),
	})
}

// ListTransactions godoc
// @Summary      Historial de cambios de cantidad (más reciente primero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        unit_id  query  string  false  "Unidad"
// @Param        item_id  query  string  false  "Insumo"
// @Param        limit    query  int     false  "Máximo de registros"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return respondError(c, errInvalidQuery)
	}
	list, err := h.ledger.ListTransactions(c.UserContext(), repository.TransactionFilter{
		UnitID: scopeUnit(c, c.Query("unit_id")),
		ItemID: c.Query("item_id"),
		Limit:  limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.TransactionListResponse{Limit: h.ledger.EffectiveLimit(limit), Items: make([]dto.TransactionResponse, 0, len(list))}
	for _, t := range list {
		out.Items = append(out.Items, dto.NewTransactionResponse(t))
	}
	return c.JSON(out)
}
