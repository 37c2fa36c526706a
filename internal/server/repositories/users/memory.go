package users

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// MemoryRepository keeps users in process memory. A single mutex covers the
// check-then-insert of every write so uniqueness holds under concurrency.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[string]*models.User
	byEmail map[string]string
	byBio   map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		byBio:   make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}
	if user.BiometricKey != "" {
		if _, ok := r.byBio[user.BiometricKey]; ok {
			return nil, common.ErrDuplicateBiometricKey
		}
	}

	r.nextID++
	now := r.now()
	user.ID = strconv.FormatInt(r.nextID, 10)
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	if stored.BiometricKey != "" {
		r.byBio[stored.BiometricKey] = stored.ID
	}

	return user, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, common.ErrorNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byBio[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) SetBiometricKey(ctx context.Context, userID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if key != "" {
		if owner, taken := r.byBio[key]; taken && owner != userID {
			return common.ErrDuplicateBiometricKey
		}
	}

	if u.BiometricKey != "" {
		delete(r.byBio, u.BiometricKey)
	}
	u.BiometricKey = key
	u.UpdatedAt = r.now()
	if key != "" {
		r.byBio[key] = userID
	}
	return nil
}
