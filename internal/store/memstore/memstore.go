// Package memstore is an in-memory store for development and tests.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/domain"
)

var _ domain.Store = (*Store)(nil)

type row[T any] struct {
	seq int
	val T
}

// Store keeps every collection in memory. The zero value is not usable;
// call New.
type Store struct {
	mu          sync.Mutex
	seq         int
	now         func() time.Time
	projects    []row[domain.Project]
	experiences []row[domain.Experience]
	messages    []row[domain.Message]
	failures    map[domain.Collection]error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:      time.Now,
		failures: make(map[domain.Collection]error),
	}
}

// SetClock replaces the clock used to stamp created_at.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Fail makes every operation on c return err until cleared with a nil err.
func (s *Store) Fail(c domain.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, c)
		return
	}
	s.failures[c] = err
}

// FailAll makes every collection fail with err.
func (s *Store) FailAll(err error) {
	for _, c := range domain.Collections {
		s.Fail(c, err)
	}
}

func (s *Store) check(ctx context.Context, c domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.failures[c]
}

func (s *Store) next() int {
	s.seq++
	return s.seq
}

// newestFirst orders by key descending, later inserts first on ties.
func newestFirst[T any, K cmp.Ordered](rows []row[T], key func(T) K) []T {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b row[T]) int {
		if c := cmp.Compare(key(b.val), key(a.val)); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	out := make([]T, len(sorted))
	for i, r := range sorted {
		out[i] = r.val
	}
	return out
}

func unixNano(t time.Time) int64 { return t.UnixNano() }

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Projects); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return newestFirst(s.projects, func(p domain.Project) int64 { return unixNano(p.CreatedAt) }), nil
}

func (s *Store) InsertProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Projects); err != nil {
		return domain.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	p.ID = uuid.NewString()
	p.CreatedAt = s.now()
	p.Normalize()
	s.projects = append(s.projects, row[domain.Project]{seq: s.next(), val: p})
	return p, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, p domain.Project) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Projects); err != nil {
		return domain.Project{}, fmt.Errorf("updating project %s: %w", id, err)
	}
	for i := range s.projects {
		if s.projects[i].val.ID != id {
			continue
		}
		p.ID = id
		p.CreatedAt = s.projects[i].val.CreatedAt
		p.Normalize()
		s.projects[i].val = p
		return p, nil
	}
	return domain.Project{}, fmt.Errorf("updating project %s: %w", id, domain.ErrNotFound)
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Projects); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	n := len(s.projects)
	s.projects = slices.DeleteFunc(s.projects, func(r row[domain.Project]) bool { return r.val.ID == id })
	if len(s.projects) == n {
		return fmt.Errorf("deleting project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Experiences); err != nil {
		return nil, fmt.Errorf("listing experiences: %w", err)
	}
	return newestFirst(s.experiences, func(e domain.Experience) string { return e.Period }), nil
}

func (s *Store) InsertExperience(ctx context.Context, e domain.Experience) (domain.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Experiences); err != nil {
		return domain.Experience{}, fmt.Errorf("inserting experience: %w", err)
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	e.Normalize()
	s.experiences = append(s.experiences, row[domain.Experience]{seq: s.next(), val: e})
	return e, nil
}

func (s *Store) UpdateExperience(ctx context.Context, id string, e domain.Experience) (domain.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Experiences); err != nil {
		return domain.Experience{}, fmt.Errorf("updating experience %s: %w", id, err)
	}
	for i := range s.experiences {
		if s.experiences[i].val.ID != id {
			continue
		}
		e.ID = id
		e.CreatedAt = s.experiences[i].val.CreatedAt
		e.Normalize()
		s.experiences[i].val = e
		return e, nil
	}
	return domain.Experience{}, fmt.Errorf("updating experience %s: %w", id, domain.ErrNotFound)
}

func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Experiences); err != nil {
		return fmt.Errorf("deleting experience %s: %w", id, err)
	}
	n := len(s.experiences)
	s.experiences = slices.DeleteFunc(s.experiences, func(r row[domain.Experience]) bool { return r.val.ID == id })
	if len(s.experiences) == n {
		return fmt.Errorf("deleting experience %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Messages); err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return newestFirst(s.messages, func(m domain.Message) int64 { return unixNano(m.CreatedAt) }), nil
}

// InsertMessage keeps the caller's CreatedAt; the contact form stamps it.
func (s *Store) InsertMessage(ctx context.Context, m domain.Message) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, domain.Messages); err != nil {
		return domain.Message{}, fmt.Errorf("inserting message: %w", err)
	}
	m.ID = uuid.NewString()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	s.messages = append(s.messages, row[domain.Message]{seq: s.next(), val: m})
	return m, nil
}

func (s *Store) Check(ctx context.Context, c domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, c); err != nil {
		return fmt.Errorf("checking %s: %w", c, err)
	}
	return nil
}
