// Package memory is a process-local implementation of the repository
// interfaces. It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

type dataset struct {
	groups     map[string]*entity.Group
	groupOrder []string
	labels     map[string]*entity.Label
	labelOrder []string
	templates  map[string]*entity.Template
	users      map[string]*entity.User
	userOrder  []string
}

func newDataset() *dataset {
	return &dataset{
		groups:    map[string]*entity.Group{},
		labels:    map[string]*entity.Label{},
		templates: map[string]*entity.Template{},
		users:     map[string]*entity.User{},
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		groups:     make(map[string]*entity.Group, len(d.groups)),
		groupOrder: slices.Clone(d.groupOrder),
		labels:     make(map[string]*entity.Label, len(d.labels)),
		labelOrder: slices.Clone(d.labelOrder),
		templates:  make(map[string]*entity.Template, len(d.templates)),
		users:      make(map[string]*entity.User, len(d.users)),
		userOrder:  slices.Clone(d.userOrder),
	}
	for k, v := range d.groups {
		c.groups[k] = cloneGroup(v)
	}
	for k, v := range d.labels {
		l := *v
		c.labels[k] = &l
	}
	for k, v := range d.templates {
		t := *v
		c.templates[k] = &t
	}
	for k, v := range d.users {
		u := *v
		c.users[k] = &u
	}
	return c
}

// Store keeps every entity in memory behind a single mutex. Transactions
// run against a copy of the data that replaces the original on commit.
type Store struct {
	mu   sync.Mutex
	data *dataset
	now  func() time.Time
	last time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{data: newDataset(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// tick returns a timestamp strictly after every timestamp handed out before.
// Callers hold s.mu.
func (s *Store) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Store) Groups() repository.GroupRepository {
	return &GroupRepository{base{s: s, locked: true}}
}

func (s *Store) Labels() repository.LabelRepository {
	return &LabelRepository{base{s: s, locked: true}}
}

func (s *Store) Templates() repository.TemplateRepository {
	return &TemplateRepository{base{s: s, locked: true}}
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepository{base{s: s, locked: true}}
}

// SeedTemplates inserts or replaces catalog templates.
func (s *Store) SeedTemplates(templates ...*entity.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range templates {
		c := *t
		now := s.tick()
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		s.data.templates[c.ID] = &c
	}
}

// RunInTx serializes transactions with every other store operation.
func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&txStore{s: s, data: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// txStore hands out repositories over the transaction copy. The parent
// mutex is already held by RunInTx.
type txStore struct {
	s    *Store
	data *dataset
}

func (t *txStore) Groups() repository.GroupRepository {
	return &GroupRepository{base{s: t.s, tx: t.data}}
}

func (t *txStore) Labels() repository.LabelRepository {
	return &LabelRepository{base{s: t.s, tx: t.data}}
}

func (t *txStore) Templates() repository.TemplateRepository {
	return &TemplateRepository{base{s: t.s, tx: t.data}}
}

func (t *txStore) Users() repository.UserRepository {
	return &UserRepository{base{s: t.s, tx: t.data}}
}

// base is embedded by every repository. Outside a transaction it locks the
// store per call; inside one it works on the transaction copy.
type base struct {
	s      *Store
	tx     *dataset
	locked bool
}

func (b *base) acquire() (*dataset, func()) {
	if b.locked {
		b.s.mu.Lock()
		return b.s.data, b.s.mu.Unlock
	}
	return b.tx, func() {}
}

func cloneGroup(g *entity.Group) *entity.Group {
	c := *g
	c.Samples = slices.Clone(g.Samples)
	c.Reviewers = slices.Clone(g.Reviewers)
	if c.Samples == nil {
		c.Samples = []string{}
	}
	if c.Reviewers == nil {
		c.Reviewers = []string{}
	}
	return &c
}

var (
	_ repository.Store    = (*Store)(nil)
	_ repository.TxRunner = (*Store)(nil)
)
