package users

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Repository = (*MemoryRepository)(nil)
var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*SQLiteRepository)(nil)

func TestMemory_CreateAndGet(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "d"})
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	got, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.PasswordHash = "mutated"
	again, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "d", again.PasswordHash, "returned users must be copies")
}

func TestMemory_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.GetUserByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.GetUserByBiometricKey(ctx, "")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.SetBiometricKey(ctx, "1", "k"), common.ErrorNotFound)
}

func TestMemory_DuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "d"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "d"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestMemory_BiometricKey(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "d"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &models.User{Email: "b@x.com", PasswordHash: "d"})
	require.NoError(t, err)

	require.NoError(t, repo.SetBiometricKey(ctx, a.ID, "k1"))
	require.NoError(t, repo.SetBiometricKey(ctx, a.ID, "k1"), "re-enrolling own key is allowed")
	assert.ErrorIs(t, repo.SetBiometricKey(ctx, b.ID, "k1"), common.ErrDuplicateBiometricKey)

	require.NoError(t, repo.SetBiometricKey(ctx, a.ID, "k2"))
	_, err = repo.GetUserByBiometricKey(ctx, "k1")
	assert.ErrorIs(t, err, common.ErrorNotFound, "old key must be released")

	got, err := repo.GetUserByBiometricKey(ctx, "k2")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestMemory_CancelledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, &models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const n = 32
	var (
		wg   sync.WaitGroup
		ok   atomic.Int32
		dups atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{Email: "same@x.com", PasswordHash: fmt.Sprint(i)})
			switch {
			case err == nil:
				ok.Add(1)
			case err == common.ErrDuplicateEmail:
				dups.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), dups.Load())
}
