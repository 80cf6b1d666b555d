package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/maze"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/google/uuid"
)

const (
	defaultMazeSize     = 10
	defaultMaxMazeSize  = 64
	defaultRoomSize     = 600
	defaultLayoutsLimit = 50
)

var (
	ErrMazeTooLarge    = errors.New("maze dimensions exceed the allowed maximum")
	ErrUnknownCategory = errors.New("unknown room category")
	ErrNilOwner        = errors.New("layout owner is required")
)

// Defaults fill in whatever a request leaves unset.
type Defaults struct {
	Width       int
	Height      int
	MaxMazeSize int
	RoomXSize   float64
	RoomZSize   float64
	Pools       maze.Pools
}

// LayoutService generates layouts, saves them and streams their progress.
type LayoutService struct {
	repo     i.LayoutRepo
	logger   i.Logger
	events   *Broker
	defaults Defaults
}

// LayoutServiceConfig is used to pass the required parameters to NewLayoutService.
type LayoutServiceConfig struct {
	Repo     i.LayoutRepo
	Logger   i.Logger
	Events   *Broker
	Defaults Defaults
}

var (
	_ i.LayoutGenerator  = &LayoutService{}
	_ i.RequestValidator = &LayoutService{}
)

// NewLayoutService creates a LayoutService, replacing unset defaults.
func NewLayoutService(c LayoutServiceConfig) (*LayoutService, error) {
	if c.Repo == nil {
		return nil, errors.New("layout repository is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if c.Events == nil {
		c.Events = NewBroker()
	}

	d := c.Defaults
	if d.Width <= 0 {
		d.Width = defaultMazeSize
	}
	if d.Height <= 0 {
		d.Height = defaultMazeSize
	}
	if d.MaxMazeSize <= 0 {
		d.MaxMazeSize = defaultMaxMazeSize
	}
	if d.RoomXSize <= 0 {
		d.RoomXSize = defaultRoomSize
	}
	if d.RoomZSize <= 0 {
		d.RoomZSize = defaultRoomSize
	}

	return &LayoutService{
		repo:     c.Repo,
		logger:   c.Logger,
		events:   c.Events,
		defaults: d,
	}, nil
}

// Events returns the broker progress events are published on.
func (s *LayoutService) Events() *Broker {
	return s.events
}

// Generate carves a maze for the request, saves the layout and returns it.
func (s *LayoutService) Generate(ctx context.Context, ownerID uuid.UUID, req i.GenerateRequest) (*dmn.Layout, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNilOwner
	}

	cfg, err := s.mazeConfig(req)
	if err != nil {
		return nil, err
	}

	layoutID := req.ID
	if layoutID == uuid.Nil {
		layoutID = uuid.New()
	}

	builder := &layoutBuilder{layoutID: layoutID, ownerID: ownerID, events: s.events, logger: s.logger}
	nav := &navigation{logger: s.logger}
	cfg.Spawner = builder
	cfg.ExitMarker = builder
	cfg.Notifier = nav
	cfg.Logger = s.logger

	start := time.Now()
	result, err := maze.Generate(cfg)
	if err != nil {
		return nil, err
	}

	layout := toLayout(layoutID, ownerID, cfg, result, nav.route)
	layout.CreatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, layout); err != nil {
		s.logger.Error(fmt.Sprintf("saving layout %s: %s", layoutID, err))
		return nil, err
	}

	s.events.Publish(Event{Type: EventCompleted, LayoutID: layoutID, OwnerID: ownerID})
	s.logger.Info(fmt.Sprintf("layout %s generated for %s in %s (seed %d)", layoutID, ownerID, time.Since(start), layout.Seed))
	return layout, nil
}

// Validate reports the configuration error Generate would return for the request.
func (s *LayoutService) Validate(req i.GenerateRequest) error {
	cfg, err := s.mazeConfig(req)
	if err != nil {
		return err
	}
	return maze.Validate(cfg)
}

// Layout returns a saved layout.
func (s *LayoutService) Layout(ctx context.Context, id uuid.UUID) (*dmn.Layout, error) {
	return s.repo.ByID(ctx, id)
}

// Layouts returns the owner's most recent layouts.
func (s *LayoutService) Layouts(ctx context.Context, ownerID uuid.UUID) ([]*dmn.Layout, error) {
	return s.repo.ByOwner(ctx, ownerID, defaultLayoutsLimit)
}

// mazeConfig merges the request with the defaults. Dimension and pool problems the
// maze package would reject are left for it to report.
func (s *LayoutService) mazeConfig(req i.GenerateRequest) (maze.Config, error) {
	cfg := maze.Config{
		Width:     req.Width,
		Height:    req.Height,
		RoomXSize: req.RoomXSize,
		RoomZSize: req.RoomZSize,
		Seed:      req.Seed,
		Pools:     s.defaults.Pools,
	}

	if cfg.Width == 0 {
		cfg.Width = s.defaults.Width
	}
	if cfg.Height == 0 {
		cfg.Height = s.defaults.Height
	}
	if cfg.RoomXSize <= 0 {
		cfg.RoomXSize = s.defaults.RoomXSize
	}
	if cfg.RoomZSize <= 0 {
		cfg.RoomZSize = s.defaults.RoomZSize
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int64N(1<<62) + 1
	}

	if max(cfg.Width, cfg.Height) > s.defaults.MaxMazeSize {
		return cfg, fmt.Errorf("%w: %dx%d, maximum %d", ErrMazeTooLarge, cfg.Width, cfg.Height, s.defaults.MaxMazeSize)
	}

	if req.Entry != nil {
		cfg.Entry = &maze.Cell{X: req.Entry.X, Y: req.Entry.Y}
	}
	if req.Exit != nil {
		cfg.Exit = &maze.Cell{X: req.Exit.X, Y: req.Exit.Y}
	}

	for name, prefabs := range req.Pools {
		category, ok := maze.ParseCategory(name)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
		pool := make([]maze.Prefab, 0, len(prefabs))
		for _, p := range prefabs {
			pool = append(pool, maze.Prefab(p))
		}
		setPool(&cfg.Pools, category, pool)
	}
	return cfg, nil
}

// setPool replaces the pool of one category.
func setPool(p *maze.Pools, c maze.Category, pool []maze.Prefab) {
	switch c {
	case maze.Entry:
		p.Entry = pool
	case maze.Exit:
		p.Exit = pool
	case maze.Corner:
		p.Corner = pool
	case maze.Border:
		p.Border = pool
	case maze.Interior:
		p.Interior = pool
	case maze.Legacy:
		p.Legacy = pool
	}
}

// PoolsFromNames builds maze pools from configured prefab names.
func PoolsFromNames(entry, exit, corner, border, interior, legacy []string) maze.Pools {
	conv := func(names []string) []maze.Prefab {
		if len(names) == 0 {
			return nil
		}
		prefabs := make([]maze.Prefab, len(names))
		for i, n := range names {
			prefabs[i] = maze.Prefab(n)
		}
		return prefabs
	}

	return maze.Pools{
		Entry:    conv(entry),
		Exit:     conv(exit),
		Corner:   conv(corner),
		Border:   conv(border),
		Interior: conv(interior),
		Legacy:   conv(legacy),
	}
}
