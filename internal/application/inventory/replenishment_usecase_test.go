package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

func TestGenerateReplenishmentList_PriorizaAgotadosYConsumo(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	seedQuantity(t, ledger, "u1", "t1", 4)
	seedQuantity(t, ledger, "u1", "t2", 9)
	seedQuantity(t, ledger, "u1", "t3", 2)
	seedQuantity(t, ledger, "u1", "t4", 20)

	remove := func(item string, qty int) {
		_, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u1", ItemID: item, Delta: -qty, ActorID: "usr_1", Type: entity.TransactionTypeREMOVE})
		require.NoError(t, err)
	}
	remove("t2", 6) // queda 3, consumo 6
	remove("t3", 2) // queda 0

	uc := inventory.NewReplenishmentUseCase(store.Stock(), store.Transactions())
	list, err := uc.GenerateReplenishmentList(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "t3", list[0].ItemID, "agotado primero")
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 8, list[0].SuggestedOrderQty)

	assert.Equal(t, "t2", list[1].ItemID, "mayor consumo")
	assert.Equal(t, 6, list[1].ConsumedLast90Days)
	assert.Equal(t, 8, list[1].IdealStock)
	assert.Equal(t, 5, list[1].SuggestedOrderQty)

	assert.Equal(t, "t1", list[2].ItemID)
	assert.Equal(t, 3, list[2].Priority)
}

func TestGenerateReplenishmentList_SinAlertasListaVacia(t *testing.T) {
	ledger, store, _ := newLedger(t)
	seedQuantity(t, ledger, "u1", "t1", 40)

	list, err := inventory.NewReplenishmentUseCase(store.Stock(), store.Transactions()).GenerateReplenishmentList(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
