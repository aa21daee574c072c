// Package tracker holds the authoritative in-memory project collection.
//
// The Store owns creation, task updates, progress recomputation and
// ordering. Every mutation is persisted through a Persister and then
// reported to the configured Presenters. Persistence failures never undo
// a mutation; they are turned into warnings.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/stsysd/reelbook/model"
)

// Persister loads and saves the whole project collection.
type Persister interface {
	Load(ctx context.Context) ([]model.Project, error)
	Save(ctx context.Context, projects []model.Project) error
}

// Warning messages shown to the user.
const (
	msgLoadFailed    = "Error loading saved projects. Starting with empty project list."
	msgQuotaExceeded = "Storage limit exceeded. Try removing old projects."
	msgSaveFailed    = "Failed to save your projects. Please check your storage settings."
)

// Store is the project collection. It is safe for concurrent use; all
// operations are serialized by a single mutex.
type Store struct {
	mu        sync.Mutex
	persister Persister
	presenter Presenter
	now       func() time.Time

	projects []model.Project // insertion order
	index    map[model.ProjectID]int
	loadErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithPresenter sets the presenter notified after every mutation.
func WithPresenter(p Presenter) Option {
	return func(s *Store) {
		s.presenter = p
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open loads the persisted collection and returns a ready Store. A load
// failure is reported as a warning and the store starts empty.
func Open(ctx context.Context, persister Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		now:       time.Now,
		index:     make(map[model.ProjectID]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := persister.Load(ctx)
	if err != nil {
		s.loadErr = err
		projects = nil
		s.warn(ctx, msgLoadFailed, SeverityError)
	}
	for _, p := range projects {
		if _, dup := s.index[p.ID]; dup {
			continue
		}
		s.index[p.ID] = len(s.projects)
		s.projects = append(s.projects, p)
	}

	s.notifyCollection(ctx)
	return s
}

// LoadError returns the error encountered while loading, if any.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Create validates the input, appends a new project and persists the
// collection. Invalid input returns a *model.ValidationError and leaves the
// store untouched.
func (s *Store) Create(ctx context.Context, name, date string) (model.ProjectID, error) {
	project, err := model.NewProject(name, date, s.now())
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if _, taken := s.index[project.ID]; !taken {
			break
		}
		project.ID = model.NewProjectID()
	}

	s.index[project.ID] = len(s.projects)
	s.projects = append(s.projects, *project)

	s.persist(ctx)
	s.notifyCollection(ctx)
	s.warn(ctx, fmt.Sprintf("Project %q added successfully", project.Name), SeverityInfo)

	return project.ID, nil
}

// SetTask sets one task of a project, recomputes its progress and persists
// the collection.
func (s *Store) SetTask(ctx context.Context, id model.ProjectID, key string, done bool) (model.TaskUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return model.TaskUpdate{}, &model.NotFoundError{ID: id}
	}
	taskKey, err := model.ParseTaskKey(key)
	if err != nil {
		return model.TaskUpdate{}, err
	}

	project := &s.projects[i]
	becameComplete, becameIncomplete, err := project.SetTask(taskKey, done, s.now())
	if err != nil {
		return model.TaskUpdate{}, err
	}
	snapshot := project.Snapshot()

	s.persist(ctx)
	for _, p := range s.presenters(ctx) {
		p.OnProjectUpdated(snapshot)
		p.OnGlobalStatsChanged(ComputeStats(s.projects))
		if becameComplete {
			p.OnProjectCompleted(snapshot)
		}
	}

	return model.TaskUpdate{
		Project:          snapshot,
		BecameComplete:   becameComplete,
		BecameIncomplete: becameIncomplete,
	}, nil
}

// List returns the projects ordered by wedding date, earliest first.
// The order is computed from the current state each time the sequence is
// iterated; the stored insertion order is never changed.
func (s *Store) List() iter.Seq[model.Snapshot] {
	return func(yield func(model.Snapshot) bool) {
		for _, snapshot := range s.sortedSnapshots() {
			if !yield(snapshot) {
				return
			}
		}
	}
}

// Projects returns List as a slice.
func (s *Store) Projects() []model.Snapshot {
	return slices.Collect(s.List())
}

// FindByID returns the project with the given ID.
func (s *Store) FindByID(id model.ProjectID) (model.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return model.Snapshot{}, false
	}
	return s.projects[i].Snapshot(), true
}

// Len returns the number of projects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

// GlobalStats returns the aggregate completion figures.
func (s *Store) GlobalStats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStats(s.projects)
}

func (s *Store) sortedSnapshots() []model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

func (s *Store) sortedLocked() []model.Snapshot {
	snapshots := make([]model.Snapshot, len(s.projects))
	for i := range s.projects {
		snapshots[i] = s.projects[i].Snapshot()
	}
	slices.SortStableFunc(snapshots, func(a, b model.Snapshot) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case b.Date.Before(a.Date):
			return 1
		}
		return 0
	})
	return snapshots
}

// persist saves the collection. Failures become warnings; the in-memory
// state stays authoritative until a later save succeeds.
func (s *Store) persist(ctx context.Context) {
	// Accepted mutations are written even if the caller has gone away.
	err := s.persister.Save(context.WithoutCancel(ctx), s.projects)
	if err == nil {
		return
	}
	if errors.Is(err, model.ErrQuotaExceeded) {
		s.warn(ctx, msgQuotaExceeded, SeverityError)
		return
	}
	s.warn(ctx, msgSaveFailed, SeverityError)
}

func (s *Store) notifyCollection(ctx context.Context) {
	presenters := s.presenters(ctx)
	if len(presenters) == 0 {
		return
	}
	snapshots := s.sortedLocked()
	stats := ComputeStats(s.projects)
	for _, p := range presenters {
		p.OnProjectsChanged(snapshots)
		p.OnGlobalStatsChanged(stats)
	}
}

func (s *Store) warn(ctx context.Context, message string, severity Severity) {
	for _, p := range s.presenters(ctx) {
		p.OnWarning(message, severity)
	}
}

// presenters returns the store presenter followed by any request-scoped one.
func (s *Store) presenters(ctx context.Context) []Presenter {
	var out []Presenter
	if s.presenter != nil {
		out = append(out, s.presenter)
	}
	if p, ok := ctx.Value(presenterKey{}).(Presenter); ok && p != nil {
		out = append(out, p)
	}
	return out
}

type presenterKey struct{}

// ContextWithPresenter attaches a presenter that receives the notifications
// of mutations made with the returned context, in addition to the store's own.
func ContextWithPresenter(ctx context.Context, p Presenter) context.Context {
	return context.WithValue(ctx, presenterKey{}, p)
}
