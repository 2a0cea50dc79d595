package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementación en memoria de RequestRepository.
type RequestRepo struct {
	db access
}

// Create persiste una nueva solicitud.
func (r *RequestRepo) Create(_ context.Context, req *entity.TonerRequest) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.requests[req.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := st.inCatalog(req.UnitID, req.ItemID); err != nil {
			return fmt.Errorf("insert request: %w", err)
		}
		st.requests[req.ID] = copyRequest(req)
		return nil
	})
}

// GetByID devuelve la solicitud o nil si no existe.
func (r *RequestRepo) GetByID(_ context.Context, id string) (*entity.TonerRequest, error) {
	var out *entity.TonerRequest
	r.db.read(func(st *state) {
		if req, ok := st.requests[id]; ok {
			out = copyRequest(req)
		}
	})
	return out, nil
}

// GetForUpdate igual que GetByID; el bloqueo lo da Store.Run.
func (r *RequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.TonerRequest, error) {
	return r.GetByID(ctx, id)
}

// UpdateStatus fija el estado y quién decidió.
func (r *RequestRepo) UpdateStatus(_ context.Context, id, status, decidedBy string, decidedAt time.Time) error {
	return r.db.write(func(st *state) error {
		req, ok := st.requests[id]
		if !ok {
			return domain.ErrNotFound
		}
		req.Status = status
		req.DecidedBy = decidedBy
		at := decidedAt
		req.DecidedAt = &at
		return nil
	})
}

// List devuelve solicitudes más recientes primero.
func (r *RequestRepo) List(_ context.Context, filter repository.RequestFilter) ([]*entity.TonerRequest, error) {
	var out []*entity.TonerRequest
	r.db.read(func(st *state) {
		for _, req := range st.requests {
			if filter.UnitID != "" && req.UnitID != filter.UnitID {
				continue
			}
			if filter.Status != "" && req.Status != filter.Status {
				continue
			}
			out = append(out, copyRequest(req))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*entity.TonerRequest{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// CountPending cuenta solicitudes PENDING; unitID vacío cuenta todas.
func (r *RequestRepo) CountPending(_ context.Context, unitID string) (int, error) {
	n := 0
	r.db.read(func(st *state) {
		for _, req := range st.requests {
			if req.Status == entity.RequestStatusPending && (unitID == "" || req.UnitID == unitID) {
				n++
			}
		}
	})
	return n, nil
}
