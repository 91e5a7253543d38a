package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MemoryMazeRepo keeps mazes in process memory. Stored and returned grids are copies.
type MemoryMazeRepo struct {
	mazes map[uuid.UUID]*dmn.Maze
	sync.RWMutex
}

// NewMemoryMazeRepo creates an empty MemoryMazeRepo.
func NewMemoryMazeRepo() *MemoryMazeRepo {
	return &MemoryMazeRepo{
		mazes: make(map[uuid.UUID]*dmn.Maze),
	}
}

func (r *MemoryMazeRepo) Save(_ context.Context, m *dmn.Maze) error {
	r.Lock()
	defer r.Unlock()
	r.mazes[m.ID] = copyMaze(m)
	return nil
}

func (r *MemoryMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Maze, error) {
	r.RLock()
	defer r.RUnlock()

	m, ok := r.mazes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dmn.ErrMazeNotFound, id)
	}
	return copyMaze(m), nil
}

func (r *MemoryMazeRepo) List(_ context.Context, limit int) ([]dmn.MazeMeta, error) {
	r.RLock()
	metas := make([]dmn.MazeMeta, 0, len(r.mazes))
	for _, m := range r.mazes {
		metas = append(metas, m.Meta())
	}
	r.RUnlock()

	sort.Slice(metas, func(a, b int) bool {
		if metas[a].CreatedAt.Equal(metas[b].CreatedAt) {
			return metas[a].ID.String() < metas[b].ID.String()
		}
		return metas[a].CreatedAt.After(metas[b].CreatedAt)
	})
	if limit > 0 && len(metas) > limit {
		metas = metas[:limit]
	}
	return metas, nil
}

func (r *MemoryMazeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.mazes[id]; !ok {
		return fmt.Errorf("%w: %s", dmn.ErrMazeNotFound, id)
	}
	delete(r.mazes, id)
	return nil
}

func copyMaze(m *dmn.Maze) *dmn.Maze {
	c := *m
	c.Grid = m.Grid.Clone()
	return &c
}
