// Package requests implementa el flujo de solicitudes de insumo: PENDING → APPROVED | REJECTED.
package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/pkg/ids"
)

const defaultListLimit = 50

// SubmitInput entrada para registrar una solicitud.
type SubmitInput struct {
	UnitID      string
	ItemID      string
	Quantity    int
	SectorName  string
	RequestorID string
}

// DecideInput entrada para decidir una solicitud.
type DecideInput struct {
	RequestID string
	Decision  string // APPROVED | REJECTED
	ActorID   string
}

// Workflow máquina de estados de solicitudes. La aprobación debita stock vía StockLedger
// en la misma transacción que cambia el estado.
type Workflow struct {
	txRunner    inventory.TxRunner
	ledger      *inventory.StockLedger
	requestRepo repository.RequestRepository
	cache       PendingCache
	metrics     MetricsRecorder
	now         func() time.Time
}

// NewWorkflow construye el flujo. cache y metrics pueden ser nil.
func NewWorkflow(
	txRunner inventory.TxRunner,
	ledger *inventory.StockLedger,
	requestRepo repository.RequestRepository,
	cache PendingCache,
	metrics MetricsRecorder,
) *Workflow {
	return &Workflow{
		txRunner:    txRunner,
		ledger:      ledger,
		requestRepo: requestRepo,
		cache:       cache,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Submit registra una solicitud PENDING. No toca stock.
func (w *Workflow) Submit(ctx context.Context, in SubmitInput) (*entity.TonerRequest, error) {
	in.SectorName = strings.TrimSpace(in.SectorName)
	if in.UnitID == "" || in.ItemID == "" || in.RequestorID == "" || in.SectorName == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	req := &entity.TonerRequest{
		ID:          ids.New(ids.PrefixRequest),
		Status:      entity.RequestStatusPending,
		Quantity:    in.Quantity,
		SectorName:  in.SectorName,
		RequestorID: in.RequestorID,
		ItemID:      in.ItemID,
		UnitID:      in.UnitID,
		Timestamp:   w.now(),
	}
	if err := w.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	w.invalidate(ctx)
	if w.metrics != nil {
		w.metrics.RequestSubmitted()
	}
	return req, nil
}

// Decide aprueba o rechaza una solicitud PENDING.
// Precondición: el llamador verificó entity.CanDecideRequests para el actor.
//
// Errores: domain.ErrNotFound, domain.ErrAlreadyDecided si ya es terminal, y
// domain.ErrInsufficientStock si la aprobación no puede debitar; en ese caso la solicitud sigue PENDING.
func (w *Workflow) Decide(ctx context.Context, in DecideInput) (*entity.TonerRequest, error) {
	if in.RequestID == "" || in.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Decision != entity.RequestStatusApproved && in.Decision != entity.RequestStatusRejected {
		return nil, domain.ErrInvalidInput
	}

	now := w.now()
	var (
		decided *entity.TonerRequest
		debit   *entity.Transaction
	)
	err := w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		requestRepo repository.RequestRepository,
	) error {
		req, err := requestRepo.GetForUpdate(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.IsPending() {
			return domain.ErrAlreadyDecided
		}

		if in.Decision == entity.RequestStatusApproved {
			debit, err = w.ledger.ApplyDeltaInTx(ctx, stockRepo, txRepo, inventory.DeltaInput{
				UnitID:        req.UnitID,
				ItemID:        req.ItemID,
				Delta:         -req.Quantity,
				ActorID:       in.ActorID,
				Type:          entity.TransactionTypeREMOVE,
				Reason:        fmt.Sprintf("request from %s approved", req.SectorName),
				CorrelationID: req.ID,
			}, now)
			if err != nil {
				return err
			}
		}

		if err := requestRepo.UpdateStatus(ctx, req.ID, in.Decision, in.ActorID, now); err != nil {
			return err
		}
		req.Status = in.Decision
		req.DecidedBy = in.ActorID
		req.DecidedAt = &now
		decided = req
		return nil
	})
	w.recordDecision(in.Decision, debit, err)
	if err != nil {
		return nil, err
	}
	w.invalidate(ctx)
	return decided, nil
}

// Get devuelve una solicitud por ID.
func (w *Workflow) Get(ctx context.Context, id string) (*entity.TonerRequest, error) {
	req, err := w.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List lista solicitudes (más recientes primero) filtrando por unidad y estado.
func (w *Workflow) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.TonerRequest, error) {
	if filter.Status != "" &&
		filter.Status != entity.RequestStatusPending &&
		filter.Status != entity.RequestStatusApproved &&
		filter.Status != entity.RequestStatusRejected {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return w.requestRepo.List(ctx, filter)
}

// PendingCount cuenta solicitudes PENDING de la unidad ("" = todas), usando la caché si existe.
func (w *Workflow) PendingCount(ctx context.Context, unitID string) (int, error) {
	var (
		version  int64
		cachable bool
	)
	if w.cache != nil {
		n, ver, ok, err := w.cache.GetPending(ctx, unitID)
		if err == nil && ok {
			return n, nil
		}
		version, cachable = ver, err == nil
	}
	n, err := w.requestRepo.CountPending(ctx, unitID)
	if err != nil {
		return 0, err
	}
	if cachable {
		_ = w.cache.SetPending(ctx, unitID, version, n)
	}
	return n, nil
}

func (w *Workflow) invalidate(ctx context.Context) {
	if w.cache != nil {
		_ = w.cache.Invalidate(ctx)
	}
}

func (w *Workflow) recordDecision(decision string, debit *entity.Transaction, err error) {
	if w.metrics == nil {
		return
	}
	outcome := "ok"
	switch {
	case err == nil:
		if debit != nil {
			w.metrics.StockMutation(debit.Type, debit.Quantity)
		}
	case errors.Is(err, domain.ErrInsufficientStock):
		outcome = "insufficient_stock"
		w.metrics.StockRejected(outcome)
	case errors.Is(err, domain.ErrAlreadyDecided):
		outcome = "already_decided"
	case errors.Is(err, domain.ErrNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	w.metrics.RequestDecided(decision, outcome)
}
