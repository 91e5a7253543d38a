package service

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/generator"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/solver"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 200
	defaultListLimit    = 20
	maxListLimit        = 100
	defaultCachePrefix  = "maze"
)

var (
	ErrMazeTooLarge = errors.New("maze dimensions exceed the limit")
)

type Options struct {
	MaxDimension int    // Largest accepted width or height
	CachePrefix  string // Prefix of cache keys
}

// MazeService generates mazes, keeps them in a repository and answers queries about them.
type MazeService struct {
	repo   i.MazeRepo
	cache  i.MazeCache
	logger i.Logger
	opts   *Options
}

// NewMazeService wires a MazeService. cache may be nil to disable caching.
func NewMazeService(repo i.MazeRepo, cache i.MazeCache, logger i.Logger, opts *Options) (*MazeService, error) {
	if repo == nil {
		return nil, errors.New("maze repository is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	var o Options
	if opts != nil {
		o = *opts
	}

	if o.MaxDimension <= 0 {
		o.MaxDimension = defaultMaxDimension
	}

	if o.CachePrefix == "" {
		o.CachePrefix = defaultCachePrefix
	}

	return &MazeService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		opts:   &o,
	}, nil
}

// Generate carves a width x height maze and stores it. A zero seed is replaced by a clock seed,
// which is recorded on the returned maze.
func (s *MazeService) Generate(ctx context.Context, width, height int, seed int64) (*dmn.Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", maze.ErrInvalidDimensions, width, height)
	}
	if max(width, height) > s.opts.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrMazeTooLarge, width, height, s.opts.MaxDimension)
	}

	b := generator.New(&generator.Options{Seed: seed})
	var (
		grid *maze.Grid
		err  error
	)
	if seed != 0 && s.cache != nil {
		grid, err = s.cachedCarve(ctx, b, width, height)
	} else {
		grid, err = s.carve(b, width, height)
	}
	if err != nil {
		return nil, err
	}

	m := dmn.NewMaze(b.Seed(), grid)
	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to save maze: %s", err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Maze generated: ID=%s Size=%dx%d Seed=%d", m.ID, width, height, m.Seed))
	return m, nil
}

// cachedCarve serves reproducible requests from the cache, generating under a lock on a miss.
func (s *MazeService) cachedCarve(ctx context.Context, b *generator.Backtracker, width, height int) (*maze.Grid, error) {
	key := cache.Key(s.opts.CachePrefix, width, height, b.Seed())

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Generating without cache lock %s: %s", key, err))
	} else {
		defer unlock()
	}

	grid, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Reading cached maze %s: %s", key, err))
	}
	if found {
		s.logger.Debug(fmt.Sprintf("Cache hit: %s", key))
		return grid, nil
	}

	grid, err = s.carve(b, width, height)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, grid); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching maze %s: %s", key, err))
	}
	return grid, nil
}

func (s *MazeService) carve(b *generator.Backtracker, width, height int) (*maze.Grid, error) {
	grid, err := maze.New(width, height)
	if err != nil {
		return nil, err
	}

	stats, err := b.Run(grid)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Maze generation failed: %s", err))
		return nil, err
	}

	if err := solver.Verify(grid); err != nil {
		s.logger.Error(fmt.Sprintf("Generated maze failed verification: %s", err))
		return nil, err
	}

	s.logger.Debug(fmt.Sprintf("Carved %dx%d: visits=%d removals=%d depth=%d took=%s",
		width, height, stats.Visits, stats.Removals, stats.MaxStackDepth, stats.Duration))
	return grid, nil
}

// ByID returns the stored maze with the given ID.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	return s.repo.ByID(ctx, id)
}

// List returns the newest mazes. limit is clamped to [1, 100]; zero selects the default.
func (s *MazeService) List(ctx context.Context, limit int) ([]dmn.MazeMeta, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	return s.repo.List(ctx, limit)
}

// Solve returns the path from the entrance to the exit of the stored maze.
func (s *MazeService) Solve(ctx context.Context, id uuid.UUID) ([]maze.Position, error) {
	m, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return solver.Solve(m.Grid)
}

// Delete removes the stored maze with the given ID.
func (s *MazeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(fmt.Sprintf("Maze deleted: ID=%s", id))
	return nil
}
