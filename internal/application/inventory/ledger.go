package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/pkg/ids"
)

const (
	// DefaultTransactionsLimit tamaño por defecto del historial (más recientes primero).
	DefaultTransactionsLimit = 100
	maxTransactionsLimit     = 500
)

// DeltaInput entrada para aplicar un cambio de cantidad.
// Type es ADD (Delta > 0), REMOVE (Delta < 0) o ADJUSTMENT (cualquier signo).
type DeltaInput struct {
	UnitID        string
	ItemID        string
	Delta         int
	ActorID       string
	Type          string
	Reason        string
	CorrelationID string
}

// StockLedger es el único punto de escritura de cantidades. Cada mutación confirmada
// deja exactamente una Transaction con la magnitud del delta, en la misma transacción de BD.
type StockLedger struct {
	txRunner          TxRunner
	stockRepo         repository.StockRepository
	txRepo            repository.TransactionRepository
	metrics           MetricsRecorder
	transactionsLimit int
	now               func() time.Time
}

// NewStockLedger construye el libro de stock. stockRepo y txRepo se usan solo para lecturas.
func NewStockLedger(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	metrics MetricsRecorder,
) *StockLedger {
	return &StockLedger{
		txRunner:          txRunner,
		stockRepo:         stockRepo,
		txRepo:            txRepo,
		metrics:           metrics,
		transactionsLimit: DefaultTransactionsLimit,
		now:               time.Now,
	}
}

// WithTransactionsLimit fija el límite por defecto del historial.
func (l *StockLedger) WithTransactionsLimit(limit int) *StockLedger {
	if limit > 0 {
		l.transactionsLimit = limit
	}
	return l
}

// ApplyDelta aplica delta a la entrada (unidad, insumo) dentro de su propia transacción.
// Precondición: el llamador verificó entity.CanManageStock para ADJUSTMENT y ajustes manuales.
// Devuelve domain.ErrInsufficientStock si la cantidad quedaría negativa; en ese caso no se escribe nada.
func (l *StockLedger) ApplyDelta(ctx context.Context, in DeltaInput) (*entity.Transaction, error) {
	if err := validateDelta(in); err != nil {
		return nil, err
	}
	var rec *entity.Transaction
	err := l.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		_ repository.RequestRepository,
	) error {
		var err error
		rec, err = l.ApplyDeltaInTx(ctx, stockRepo, txRepo, in, l.now())
		return err
	})
	if err != nil {
		l.recordRejection(err)
		return nil, err
	}
	l.recordMutation(rec)
	return rec, nil
}

// ApplyDeltaInTx ejecuta la mutación con los repositorios de la transacción del llamador
// (transferencias y aprobación de solicitudes). Bloquea la fila (SELECT FOR UPDATE) antes de calcular.
func (l *StockLedger) ApplyDeltaInTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	in DeltaInput,
	now time.Time,
) (*entity.Transaction, error) {
	if err := validateDelta(in); err != nil {
		return nil, err
	}
	entry, err := stockRepo.GetForUpdate(ctx, in.UnitID, in.ItemID)
	if err != nil {
		return nil, err
	}
	newQty := entry.Quantity + in.Delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if err := stockRepo.SetQuantity(ctx, in.UnitID, in.ItemID, newQty); err != nil {
		return nil, err
	}
	rec := &entity.Transaction{
		ID:            ids.New(ids.PrefixTransaction),
		CorrelationID: in.CorrelationID,
		Type:          in.Type,
		Quantity:      abs(in.Delta),
		Reason:        in.Reason,
		UserID:        in.ActorID,
		ItemID:        in.ItemID,
		UnitID:        in.UnitID,
		Timestamp:     now,
	}
	if err := txRepo.Append(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetEntries lista entradas de stock; filter vacío devuelve todas.
func (l *StockLedger) GetEntries(ctx context.Context, filter repository.StockFilter) ([]*entity.StockEntry, error) {
	return l.stockRepo.List(ctx, filter)
}

// GetLowStock lista entradas con quantity <= minStockAlert. unitID vacío = todas las unidades.
func (l *StockLedger) GetLowStock(ctx context.Context, unitID string) ([]*entity.StockEntry, error) {
	return l.stockRepo.ListLowStock(ctx, unitID)
}

// GetEntry devuelve la entrada (cantidad 0 si aún no existe).
func (l *StockLedger) GetEntry(ctx context.Context, unitID, itemID string) (*entity.StockEntry, error) {
	if unitID == "" || itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	return l.stockRepo.Get(ctx, unitID, itemID)
}

// ListTransactions devuelve el historial más reciente primero, acotado por filter.Limit.
func (l *StockLedger) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	filter.Limit = l.EffectiveLimit(filter.Limit)
	return l.txRepo.List(ctx, filter)
}

// EffectiveLimit límite que aplica ListTransactions para el valor pedido.
func (l *StockLedger) EffectiveLimit(limit int) int {
	if limit <= 0 {
		return l.transactionsLimit
	}
	if limit > maxTransactionsLimit {
		return maxTransactionsLimit
	}
	return limit
}

// UpdateMinStockAlert cambia el umbral de alerta. No toca la cantidad ni genera Transaction.
func (l *StockLedger) UpdateMinStockAlert(ctx context.Context, unitID, itemID string, minStockAlert int) error {
	if unitID == "" || itemID == "" || minStockAlert < 0 {
		return domain.ErrInvalidInput
	}
	return l.stockRepo.UpdateMinStockAlert(ctx, unitID, itemID, minStockAlert)
}

func (l *StockLedger) recordMutation(rec *entity.Transaction) {
	if l.metrics != nil && rec != nil {
		l.metrics.StockMutation(rec.Type, rec.Quantity)
	}
}

func (l *StockLedger) recordRejection(err error) {
	if l.metrics == nil {
		return
	}
	l.metrics.StockRejected(rejectionReason(err))
}

func validateDelta(in DeltaInput) error {
	if in.UnitID == "" || in.ItemID == "" || in.Delta == 0 {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.TransactionTypeADD:
		if in.Delta < 0 {
			return domain.ErrInvalidInput
		}
	case entity.TransactionTypeREMOVE:
		if in.Delta > 0 {
			return domain.ErrInvalidInput
		}
	case entity.TransactionTypeADJUSTMENT:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
