package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/solver"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	grids   map[string]*maze.Grid
	locks   int
	unlocks int
	lockErr error
	mu      sync.Mutex
}

func newFakeCache() *fakeCache {
	return &fakeCache{grids: make(map[string]*maze.Grid)}
}

func (c *fakeCache) Get(_ context.Context, key string) (*maze.Grid, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.grids[key]
	if !ok {
		return nil, false, nil
	}
	return g.Clone(), true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, g *maze.Grid) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grids[key] = g.Clone()
	return nil
}

func (c *fakeCache) Lock(context.Context, string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return nil, c.lockErr
	}
	c.locks++
	return func() {
		c.mu.Lock()
		c.unlocks++
		c.mu.Unlock()
	}, nil
}

func newService(t *testing.T, cache *fakeCache, opts *Options) (*MazeService, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	l, err := logger.New("MAZE", "", &logs)
	require.NoError(t, err)

	var svc *MazeService
	if cache == nil {
		svc, err = NewMazeService(repo.NewMemoryMazeRepo(), nil, l, opts)
	} else {
		svc, err = NewMazeService(repo.NewMemoryMazeRepo(), cache, l, opts)
	}
	require.NoError(t, err)
	return svc, &logs
}

func TestNewMazeService(t *testing.T) {
	l, err := logger.New("MAZE", "", &bytes.Buffer{})
	require.NoError(t, err)

	_, err = NewMazeService(nil, nil, l, nil)
	assert.Error(t, err)

	_, err = NewMazeService(repo.NewMemoryMazeRepo(), nil, nil, nil)
	assert.Error(t, err)

	opts := &Options{}
	svc, err := NewMazeService(repo.NewMemoryMazeRepo(), nil, l, opts)
	require.NoError(t, err)
	assert.Equal(t, defaultMaxDimension, svc.opts.MaxDimension)
	assert.Equal(t, defaultCachePrefix, svc.opts.CachePrefix)
	assert.Equal(t, Options{}, *opts)

	svc, err = NewMazeService(repo.NewMemoryMazeRepo(), nil, l, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMaxDimension, svc.opts.MaxDimension)
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a perfect maze", func(t *testing.T) {
		svc, logs := newService(t, nil, nil)

		m, err := svc.Generate(ctx, 6, 4, 77)
		require.NoError(t, err)
		assert.Equal(t, int64(77), m.Seed)
		assert.Equal(t, 6, m.Width())
		assert.Equal(t, 4, m.Height())
		assert.NoError(t, solver.Verify(m.Grid))

		stored, err := svc.ByID(ctx, m.ID)
		require.NoError(t, err)
		assert.True(t, m.Grid.Equal(stored.Grid))
		assert.Contains(t, logs.String(), "Maze generated")
	})

	t.Run("Zero seed is replaced and reproducible", func(t *testing.T) {
		svc, _ := newService(t, nil, nil)

		m, err := svc.Generate(ctx, 5, 5, 0)
		require.NoError(t, err)
		assert.NotZero(t, m.Seed)

		replay, err := svc.Generate(ctx, 5, 5, m.Seed)
		require.NoError(t, err)
		assert.True(t, m.Grid.Equal(replay.Grid))
		assert.NotEqual(t, m.ID, replay.ID)
	})

	t.Run("Rejects bad dimensions", func(t *testing.T) {
		svc, _ := newService(t, nil, &Options{MaxDimension: 10})

		_, err := svc.Generate(ctx, 0, 5, 1)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		_, err = svc.Generate(ctx, 11, 5, 1)
		assert.ErrorIs(t, err, ErrMazeTooLarge)
	})

	t.Run("Seeded requests go through the cache", func(t *testing.T) {
		c := newFakeCache()
		svc, logs := newService(t, c, nil)
		require.NoError(t, svc.logger.(*logger.Logger).SetLevel("debug"))

		first, err := svc.Generate(ctx, 7, 7, 5)
		require.NoError(t, err)
		assert.Len(t, c.grids, 1)

		second, err := svc.Generate(ctx, 7, 7, 5)
		require.NoError(t, err)
		assert.True(t, first.Grid.Equal(second.Grid))
		assert.Contains(t, logs.String(), "Cache hit: maze:7x7:seed_5")
		assert.Equal(t, 2, c.locks)
		assert.Equal(t, 2, c.unlocks)
	})

	t.Run("Clock seeds skip the cache", func(t *testing.T) {
		c := newFakeCache()
		svc, _ := newService(t, c, nil)

		_, err := svc.Generate(ctx, 3, 3, 0)
		require.NoError(t, err)
		assert.Empty(t, c.grids)
		assert.Zero(t, c.locks)
	})

	t.Run("Lock failure still generates", func(t *testing.T) {
		c := newFakeCache()
		c.lockErr = errors.New("redis down")
		svc, logs := newService(t, c, nil)

		m, err := svc.Generate(ctx, 4, 4, 9)
		require.NoError(t, err)
		assert.NoError(t, solver.Verify(m.Grid))
		assert.Contains(t, logs.String(), "Generating without cache lock")
	})
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, nil, nil)

	m, err := svc.Generate(ctx, 4, 3, 21)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, 2, 2, 22)
	require.NoError(t, err)

	t.Run("Solve", func(t *testing.T) {
		path, err := svc.Solve(ctx, m.ID)
		require.NoError(t, err)
		require.NotEmpty(t, path)
		assert.Equal(t, maze.Position{X: 0, Y: 0}, path[0])
		assert.Equal(t, maze.Position{X: 3, Y: 2}, path[len(path)-1])
	})

	t.Run("List", func(t *testing.T) {
		metas, err := svc.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, metas, 2)

		metas, err = svc.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, metas, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, m.ID))
		_, err := svc.ByID(ctx, m.ID)
		assert.ErrorIs(t, err, dmn.ErrMazeNotFound)

		_, err = svc.Solve(ctx, m.ID)
		assert.ErrorIs(t, err, dmn.ErrMazeNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), dmn.ErrMazeNotFound)
	})
}
