package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var (
	_ repository.UnitRepository       = (*UnitRepo)(nil)
	_ repository.SupplyItemRepository = (*SupplyItemRepo)(nil)
	_ repository.SectorRepository     = (*SectorRepo)(nil)
)

// UnitRepo implementación en memoria de UnitRepository.
type UnitRepo struct {
	db access
}

// Create persiste una unidad; el ID debe ser único.
func (r *UnitRepo) Create(_ context.Context, unit *entity.Unit) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.units[unit.ID]; ok {
			return domain.ErrDuplicate
		}
		st.units[unit.ID] = copyUnit(unit)
		return nil
	})
}

// GetByID devuelve la unidad o nil.
func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.Unit, error) {
	var out *entity.Unit
	r.db.read(func(st *state) {
		if u, ok := st.units[id]; ok {
			out = copyUnit(u)
		}
	})
	return out, nil
}

// Update reemplaza la unidad.
func (r *UnitRepo) Update(_ context.Context, unit *entity.Unit) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.units[unit.ID]; !ok {
			return domain.ErrNotFound
		}
		st.units[unit.ID] = copyUnit(unit)
		return nil
	})
}

// List devuelve las unidades por display_order y nombre.
func (r *UnitRepo) List(_ context.Context) ([]*entity.Unit, error) {
	var out []*entity.Unit
	r.db.read(func(st *state) {
		for _, u := range st.units {
			out = append(out, copyUnit(u))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Delete elimina la unidad con sus entradas y sectores. Falla con ErrConflict si tiene historial.
func (r *UnitRepo) Delete(_ context.Context, id string) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.units[id]; !ok {
			return domain.ErrNotFound
		}
		for _, t := range st.transactions {
			if t.UnitID == id {
				return domain.ErrConflict
			}
		}
		for _, req := range st.requests {
			if req.UnitID == id {
				return domain.ErrConflict
			}
		}
		for k, e := range st.entries {
			if e.UnitID == id {
				delete(st.entries, k)
			}
		}
		for k, s := range st.sectors {
			if s.UnitID == id {
				delete(st.sectors, k)
			}
		}
		for _, u := range st.users {
			if u.UnitID == id {
				u.UnitID = ""
				u.SectorID = ""
			}
		}
		delete(st.units, id)
		return nil
	})
}

// SupplyItemRepo implementación en memoria de SupplyItemRepository.
type SupplyItemRepo struct {
	db access
}

// Create persiste un insumo; el ID debe ser único.
func (r *SupplyItemRepo) Create(_ context.Context, item *entity.SupplyItem) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.items[item.ID] = copyItem(item)
		return nil
	})
}

// GetByID devuelve el insumo o nil.
func (r *SupplyItemRepo) GetByID(_ context.Context, id string) (*entity.SupplyItem, error) {
	var out *entity.SupplyItem
	r.db.read(func(st *state) {
		if i, ok := st.items[id]; ok {
			out = copyItem(i)
		}
	})
	return out, nil
}

// Update reemplaza el insumo.
func (r *SupplyItemRepo) Update(_ context.Context, item *entity.SupplyItem) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.items[item.ID]; !ok {
			return domain.ErrNotFound
		}
		st.items[item.ID] = copyItem(item)
		return nil
	})
}

// List devuelve los insumos por modelo y color.
func (r *SupplyItemRepo) List(_ context.Context, onlyActive bool) ([]*entity.SupplyItem, error) {
	var out []*entity.SupplyItem
	r.db.read(func(st *state) {
		for _, i := range st.items {
			if onlyActive && !i.Active {
				continue
			}
			out = append(out, copyItem(i))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Model != out[j].Model {
			return out[i].Model < out[j].Model
		}
		return out[i].Color < out[j].Color
	})
	return out, nil
}

// Delete elimina el insumo y sus entradas. Falla con ErrConflict si tiene historial.
func (r *SupplyItemRepo) Delete(_ context.Context, id string) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return domain.ErrNotFound
		}
		for _, t := range st.transactions {
			if t.ItemID == id {
				return domain.ErrConflict
			}
		}
		for _, req := range st.requests {
			if req.ItemID == id {
				return domain.ErrConflict
			}
		}
		for k, e := range st.entries {
			if e.ItemID == id {
				delete(st.entries, k)
			}
		}
		delete(st.items, id)
		return nil
	})
}

// SectorRepo implementación en memoria de SectorRepository.
type SectorRepo struct {
	db access
}

// Create persiste un sector; la unidad debe existir.
func (r *SectorRepo) Create(_ context.Context, sector *entity.Sector) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.units[sector.UnitID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.sectors[sector.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sectors[sector.ID] = copySector(sector)
		return nil
	})
}

// GetByID devuelve el sector o nil.
func (r *SectorRepo) GetByID(_ context.Context, id string) (*entity.Sector, error) {
	var out *entity.Sector
	r.db.read(func(st *state) {
		if s, ok := st.sectors[id]; ok {
			out = copySector(s)
		}
	})
	return out, nil
}

// Update reemplaza el sector.
func (r *SectorRepo) Update(_ context.Context, sector *entity.Sector) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.sectors[sector.ID]; !ok {
			return domain.ErrNotFound
		}
		st.sectors[sector.ID] = copySector(sector)
		return nil
	})
}

// List devuelve los sectores por nombre; unitID vacío devuelve todos.
func (r *SectorRepo) List(_ context.Context, unitID string) ([]*entity.Sector, error) {
	var out []*entity.Sector
	r.db.read(func(st *state) {
		for _, s := range st.sectors {
			if unitID != "" && s.UnitID != unitID {
				continue
			}
			out = append(out, copySector(s))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete elimina el sector.
func (r *SectorRepo) Delete(_ context.Context, id string) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.sectors[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.sectors, id)
		for _, u := range st.users {
			if u.SectorID == id {
				u.SectorID = ""
			}
		}
		return nil
	})
}
