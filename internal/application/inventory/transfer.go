package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/pkg/ids"
)

// TransferInput entrada para mover cantidad de un insumo entre dos unidades.
type TransferInput struct {
	SourceUnitID string
	DestUnitID   string
	ItemID       string
	Quantity     int
	ActorID      string
}

// TransferResult registros generados por una transferencia confirmada.
type TransferResult struct {
	CorrelationID string
	Debit         *entity.Transaction
	Credit        *entity.Transaction
}

// TransferCoordinator compone débito en origen y crédito en destino en una sola transacción de BD.
type TransferCoordinator struct {
	txRunner TxRunner
	ledger   *StockLedger
	now      func() time.Time
}

// NewTransferCoordinator construye el coordinador sobre el libro de stock.
func NewTransferCoordinator(txRunner TxRunner, ledger *StockLedger) *TransferCoordinator {
	return &TransferCoordinator{txRunner: txRunner, ledger: ledger, now: time.Now}
}

// Transfer debita origen (REMOVE) y acredita destino (ADD); ambos registros comparten CorrelationID.
// Precondición: el llamador verificó entity.CanManageStock.
// Devuelve domain.ErrInvalidTransfer si origen == destino o quantity <= 0, y
// domain.ErrInsufficientStock si el origen no alcanza; en ambos casos nada cambia.
func (c *TransferCoordinator) Transfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if in.SourceUnitID == "" || in.DestUnitID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceUnitID == in.DestUnitID || in.Quantity <= 0 {
		return nil, domain.ErrInvalidTransfer
	}

	now := c.now()
	out := &TransferResult{CorrelationID: ids.New(ids.PrefixTransfer)}

	err := c.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		_ repository.RequestRepository,
	) error {
		// Bloqueo en orden fijo: dos transferencias cruzadas no se interbloquean.
		keys := []string{in.SourceUnitID, in.DestUnitID}
		sort.Strings(keys)
		for _, unitID := range keys {
			if _, err := stockRepo.GetForUpdate(ctx, unitID, in.ItemID); err != nil {
				return err
			}
		}

		debit, err := c.ledger.ApplyDeltaInTx(ctx, stockRepo, txRepo, DeltaInput{
			UnitID:        in.SourceUnitID,
			ItemID:        in.ItemID,
			Delta:         -in.Quantity,
			ActorID:       in.ActorID,
			Type:          entity.TransactionTypeREMOVE,
			Reason:        fmt.Sprintf("transfer to %s", in.DestUnitID),
			CorrelationID: out.CorrelationID,
		}, now)
		if err != nil {
			return err
		}
		credit, err := c.ledger.ApplyDeltaInTx(ctx, stockRepo, txRepo, DeltaInput{
			UnitID:        in.DestUnitID,
			ItemID:        in.ItemID,
			Delta:         in.Quantity,
			ActorID:       in.ActorID,
			Type:          entity.TransactionTypeADD,
			Reason:        fmt.Sprintf("transfer from %s", in.SourceUnitID),
			CorrelationID: out.CorrelationID,
		}, now)
		if err != nil {
			return err
		}
		out.Debit, out.Credit = debit, credit
		return nil
	})
	if err != nil {
		c.ledger.recordRejection(err)
		return nil, err
	}
	c.ledger.recordMutation(out.Debit)
	c.ledger.recordMutation(out.Credit)
	return out, nil
}
