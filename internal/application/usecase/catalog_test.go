package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/application/usecase"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/internal/infrastructure/memory"
)

type catalog struct {
	store *memory.Store
	units *usecase.UnitUseCase
	items *usecase.SupplyItemUseCase
}

func newCatalog() *catalog {
	store := memory.NewStore()
	return &catalog{
		store: store,
		units: usecase.NewUnitUseCase(store.Units(), store.Items(), store.Stock()),
		items: usecase.NewSupplyItemUseCase(store.Items(), store.Units(), store.Stock()),
	}
}

func TestCatalog_SiembraEntradasEnAmbasDirecciones(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	central, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "Hospital Central"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(central.ID, "u_hospital_central_"))

	black, err := c.items.Create(ctx, dto.CreateSupplyItemRequest{Model: "HP 26A", Color: entity.ColorBlack})
	require.NoError(t, err)
	assert.Equal(t, "t_hp_26a_black", black.ID)

	pedia, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "CM Pediátrico", DisplayOrder: 1})
	require.NoError(t, err)

	entries, err := c.store.Stock().List(ctx, repository.StockFilter{ItemID: black.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, 0, e.Quantity)
		assert.Equal(t, entity.DefaultMinStockAlert, e.MinStockAlert)
	}
	units := []string{entries[0].UnitID, entries[1].UnitID}
	assert.ElementsMatch(t, []string{central.ID, pedia.ID}, units)
}

func TestSupplyItem_DuplicadoYColorInvalido(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	_, err := c.items.Create(ctx, dto.CreateSupplyItemRequest{Model: "HP 26A", Color: entity.ColorBlack})
	require.NoError(t, err)
	_, err = c.items.Create(ctx, dto.CreateSupplyItemRequest{Model: "hp 26a", Color: entity.ColorBlack})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = c.items.Create(ctx, dto.CreateSupplyItemRequest{Model: "HP 26A", Color: "Green"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplyItem_InactivoNoSeSiembra(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	item, err := c.items.Create(ctx, dto.CreateSupplyItemRequest{Model: "Brother TN-660", Color: entity.ColorBlack})
	require.NoError(t, err)

	inactive := false
	updated, err := c.items.Update(ctx, item.ID, dto.UpdateSupplyItemRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	unit, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "Anexo"})
	require.NoError(t, err)
	entries, err := c.store.Stock().List(ctx, repository.StockFilter{UnitID: unit.ID})
	require.NoError(t, err)
	assert.Empty(t, entries)

	active, err := c.items.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active.Items)
}

func TestUnit_DeleteConHistorialEsConflicto(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	unit, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "Central"})
	require.NoError(t, err)
	item, err := c.items.Create(ctx, dto.CreateSupplyItemRequest{Model: "HP 26A", Color: entity.ColorBlack})
	require.NoError(t, err)

	ledger := inventory.NewStockLedger(c.store, c.store.Stock(), c.store.Transactions(), nil)
	_, err = ledger.ApplyDelta(ctx, inventory.DeltaInput{
		UnitID: unit.ID, ItemID: item.ID, Delta: 3, ActorID: "usr_admin", Type: entity.TransactionTypeADD,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, c.units.Delete(ctx, unit.ID), domain.ErrConflict)
	assert.ErrorIs(t, c.items.Delete(ctx, item.ID), domain.ErrConflict)

	empty, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "Vacía"})
	require.NoError(t, err)
	require.NoError(t, c.units.Delete(ctx, empty.ID))
	_, err = c.units.GetByID(ctx, empty.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnit_UpdateYList(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	a, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "B unidad", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = c.units.Create(ctx, dto.CreateUnitRequest{Name: "A unidad", DisplayOrder: 1})
	require.NoError(t, err)

	name := "Unidad renombrada"
	order := 0
	updated, err := c.units.Update(ctx, a.ID, dto.UpdateUnitRequest{Name: &name, DisplayOrder: &order})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, a.ID, updated.ID)

	list, err := c.units.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Unidad renombrada", list.Items[0].Name)

	blank := "  "
	_, err = c.units.Update(ctx, a.ID, dto.UpdateUnitRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.units.Update(ctx, "u_nada", dto.UpdateUnitRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSector_CRUD(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	sectors := usecase.NewSectorUseCase(c.store.Sectors())
	unit, err := c.units.Create(ctx, dto.CreateUnitRequest{Name: "Central"})
	require.NoError(t, err)

	_, err = sectors.Create(ctx, dto.CreateSectorRequest{UnitID: "u_nada", Name: "Farmacia"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err := sectors.Create(ctx, dto.CreateSectorRequest{UnitID: unit.ID, Name: "Farmacia"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.ID, "s_farmacia_"))

	renamed, err := sectors.Update(ctx, s.ID, dto.UpdateSectorRequest{Name: "Farmacia Central"})
	require.NoError(t, err)
	assert.Equal(t, "Farmacia Central", renamed.Name)

	list, err := sectors.List(ctx, unit.ID)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, sectors.Delete(ctx, s.ID))
	assert.ErrorIs(t, sectors.Delete(ctx, s.ID), domain.ErrNotFound)
}
