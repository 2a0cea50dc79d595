package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	db access
}

// Create persiste un usuario; el username es único.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, u := range st.users {
			if u.Username == user.Username {
				return domain.ErrUsernameTaken
			}
		}
		st.users[user.ID] = copyUser(user)
		return nil
	})
}

// GetByID devuelve el usuario o nil.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.db.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = copyUser(u)
		}
	})
	return out, nil
}

// GetByUsername devuelve el usuario o nil.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.db.read(func(st *state) {
		for _, u := range st.users {
			if u.Username == username {
				out = copyUser(u)
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza el usuario.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.users[user.ID]; !ok {
			return domain.ErrNotFound
		}
		st.users[user.ID] = copyUser(user)
		return nil
	})
}

// List devuelve usuarios por username con paginación.
func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	r.db.read(func(st *state) {
		for _, u := range st.users {
			out = append(out, copyUser(u))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if offset > 0 {
		if offset >= len(out) {
			return []*entity.User{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.users, id)
		return nil
	})
}
