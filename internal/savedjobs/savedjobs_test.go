package savedjobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facultyjobs/internal/apperr"
)

type fakeStore struct {
	saved   map[string][]string
	adds    int
	removes int
	listErr error
	addErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string][]string)}
}

func (f *fakeStore) List(ctx context.Context, uid string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.saved[uid], nil
}

func (f *fakeStore) Add(ctx context.Context, uid, jobID string, savedAt time.Time) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.adds++
	f.saved[uid] = append(f.saved[uid], jobID)
	return nil
}

func (f *fakeStore) Remove(ctx context.Context, uid, jobID string) error {
	f.removes++
	ids := f.saved[uid]
	for i, id := range ids {
		if id == jobID {
			f.saved[uid] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestToggleIssuesOneWriteEachWay(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, zap.NewNop())
	ctx := context.Background()

	saved, err := m.Toggle(ctx, "u1", "job1")
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, m.IsSaved("job1"))
	assert.Equal(t, 1, store.adds)
	assert.Equal(t, 0, store.removes)

	saved, err = m.Toggle(ctx, "u1", "job1")
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, m.IsSaved("job1"))
	assert.Equal(t, 1, store.adds)
	assert.Equal(t, 1, store.removes)
}

func TestToggleRequiresIdentity(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, zap.NewNop())

	_, err := m.Toggle(context.Background(), "", "job1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	assert.Equal(t, 0, store.adds)
	assert.Equal(t, 0, store.removes)
}

func TestToggleFailedWriteLeavesSetUnchanged(t *testing.T) {
	store := newFakeStore()
	store.addErr = errors.New("redis down")
	m := NewManager(store, zap.NewNop())

	saved, err := m.Toggle(context.Background(), "u1", "job1")
	require.Error(t, err)
	assert.False(t, saved)
	assert.False(t, m.IsSaved("job1"))
}

func TestLoadReplacesSet(t *testing.T) {
	store := newFakeStore()
	store.saved["u1"] = []string{"job1", "job2"}
	m := NewManager(store, zap.NewNop())
	ctx := context.Background()

	m.Load(ctx, "u1")
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.IsSaved("job1"))

	// fresh identity, fresh set
	m.Load(ctx, "u2")
	assert.Equal(t, 0, m.Len())
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	store := newFakeStore()
	store.saved["u1"] = []string{"job1"}
	m := NewManager(store, zap.NewNop())
	ctx := context.Background()

	m.Load(ctx, "u1")
	require.Equal(t, 1, m.Len())

	store.listErr = errors.New("redis down")
	m.Load(ctx, "u1")
	assert.Equal(t, 0, m.Len())
}

func TestClear(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, zap.NewNop())

	_, err := m.Toggle(context.Background(), "u1", "job1")
	require.NoError(t, err)

	m.Clear()
	assert.False(t, m.IsSaved("job1"))
}
