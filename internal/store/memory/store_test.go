package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"searchdesk/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCodeOverwrite(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	_, err := st.GetLoginCode(ctx, "a@example.com")
	assert.ErrorIs(t, err, store.ErrCodeNotFound)

	require.NoError(t, st.PutLoginCode(ctx, "a@example.com", "111111"))
	require.NoError(t, st.PutLoginCode(ctx, "a@example.com", "222222"))

	code, err := st.GetLoginCode(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	session, err := st.CreateSession(ctx, "a@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	got, err := st.GetSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	require.NoError(t, st.DeleteSession(ctx, session.Token))
	_, err = st.GetSession(ctx, session.Token)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestExpiredSessionNotFound(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	session, err := st.CreateSession(ctx, "a@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = st.GetSession(ctx, session.Token)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestIncrementUsageEnforcesLimit(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	for i := 1; i <= 10; i++ {
		usage, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-30", 10)
		require.NoError(t, err)
		assert.Equal(t, i, usage.Count)
	}

	usage, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-30", 10)
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	assert.Equal(t, 10, usage.Count, "denial must not change the stored count")

	stored, err := st.GetUsage(ctx, "a@example.com", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Count)
}

func TestIncrementUsageResetsOnNewDay(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	for i := 0; i < 10; i++ {
		_, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-29", 10)
		require.NoError(t, err)
	}
	_, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-29", 10)
	require.ErrorIs(t, err, store.ErrQuotaExceeded)

	usage, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-30", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Count)
}

func TestGetUsageIgnoresStaleDay(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	_, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-29", 10)
	require.NoError(t, err)

	usage, err := st.GetUsage(ctx, "a@example.com", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Count)
}

func TestIncrementUsageConcurrent(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	const limit = 10
	const attempts = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-30", limit); err == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
	usage, err := st.GetUsage(ctx, "a@example.com", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, limit, usage.Count)
}

func TestUsageIsPerEmail(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	_, err := st.IncrementUsage(ctx, "a@example.com", "2026-08-30", 10)
	require.NoError(t, err)

	usage, err := st.GetUsage(ctx, "b@example.com", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Count)
}
