package users

import (
	"context"
	"sort"
	"sync"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

// InMemoryRepository keeps users in a map guarded by a mutex. Used by tests
// and by the server when no database DSN is configured.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return nil, common.ErrAlreadyExists
	}
	clone := *user
	r.users[user.Username] = &clone
	return user, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryRepository) GetActiveRenters(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.User
	for _, user := range r.users {
		if user.TimeBalance > 0 && len(user.FaceEncoding) > 0 {
			clone := *user
			result = append(result, &clone)
		}
	}
	sortByUsername(result)
	return result, nil
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		result = append(result, &clone)
	}
	sortByUsername(result)
	return result, nil
}

func (r *InMemoryRepository) AdjustBalance(ctx context.Context, username string, deltaMinutes float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return common.ErrNotFound
	}
	user.TimeBalance += deltaMinutes
	if user.TimeBalance < 0 {
		user.TimeBalance = 0
	}
	return nil
}

func (r *InMemoryRepository) UpdateFace(ctx context.Context, username string, gallery protocol.Gallery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return common.ErrNotFound
	}
	user.FaceEncoding = gallery
	return nil
}

func (r *InMemoryRepository) UpdateField(ctx context.Context, username string, field string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return common.ErrNotFound
	}

	switch field {
	case "full_name":
		user.FullName = value
	case "password":
		user.PasswordHash = value
	case "role":
		user.Role = value
	case "username":
		if _, taken := r.users[value]; taken {
			return common.ErrAlreadyExists
		}
		delete(r.users, username)
		user.Username = value
		r.users[value] = user
	default:
		return common.ErrInternal
	}
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func sortByUsername(users []*models.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
}
