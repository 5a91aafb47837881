// Package store holds the derived information graph in memory and
// orchestrates insight generation and evidence injection over it.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"insightgraph/internal/events"
	"insightgraph/internal/logger"
	"insightgraph/internal/model"
	"insightgraph/internal/transform"
)

// ErrNotReady is returned by every query and mutation until Initialize
// has completed successfully.
var ErrNotReady = errors.New("store not initialized")

// Source loads the raw dataset the store is derived from.
type Source interface {
	Load(ctx context.Context) (*model.Dataset, error)
}

// Archive is an append-only audit log of generated insights and evidence
// injections. The in-memory store stays authoritative.
type Archive interface {
	EnsureSchema(ctx context.Context) error
	RecordInsight(ctx context.Context, block model.InsightBlock, at time.Time) error
	RecordInjection(ctx context.Context, injection model.Injection) error
	ListInsightRecords(ctx context.Context, limit int) ([]InsightRecord, error)
	Close(ctx context.Context) error
}

type Option func(*Store)

func WithLogger(log *logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithArchive(a Archive) Option {
	return func(s *Store) { s.archive = a }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type counters struct {
	summary   int
	node      int
	link      int
	insight   int
	injection int
}

// Store is safe for concurrent use. Mutations hold the write lock for the
// whole read-modify-write, so IDs are never minted twice.
type Store struct {
	source    Source
	log       *logger.Logger
	archive   Archive
	publisher events.Publisher
	now       func() time.Time

	mu         sync.RWMutex
	ready      bool
	seq        counters
	meta       model.Meta
	summaries  []model.Summary
	nodes      []model.InformationNode
	links      []model.NodeLink
	insights   []model.InsightBlock
	cards      []model.BriefingCard
	injections []model.Injection
}

// New returns an uninitialized store.
func New(source Source, opts ...Option) *Store {
	s := &Store{
		source:    source,
		log:       logger.NewNop(),
		publisher: &events.NoopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open constructs a store and initializes it from source.
func Open(ctx context.Context, source Source, opts ...Option) (*Store, error) {
	s := New(source, opts...)
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize loads the source and replaces all state with the transformed
// result. On failure the previous state, ready or not, is left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("initializing store: no source configured")
	}
	ds, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	result := transform.Dataset(ds, s.now())

	s.mu.Lock()
	s.meta = result.Meta
	s.summaries = result.Summaries
	s.nodes = result.InformationNodes
	s.links = result.NodeLinks
	s.insights = result.InsightBlocks
	s.cards = result.BriefingCards
	s.injections = []model.Injection{}
	s.seq = counters{
		summary:   len(s.summaries),
		node:      len(s.nodes),
		link:      len(s.links),
		insight:   len(s.insights),
		injection: 0,
	}
	s.ready = true
	s.mu.Unlock()

	s.log.Info("store initialized",
		"tenant", result.Meta.Tenant,
		"summaries", len(result.Summaries),
		"nodes", len(result.InformationNodes),
		"links", len(result.NodeLinks),
		"briefing_cards", len(result.BriefingCards),
	)
	return nil
}

// Ready reports whether Initialize has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Close releases the archive and publisher.
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	if s.archive != nil {
		if err := s.archive.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("closing archive: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}
