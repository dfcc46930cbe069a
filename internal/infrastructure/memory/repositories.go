package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

type GroupRepository struct{ base }

func (r *GroupRepository) Create(_ context.Context, g *entity.Group) error {
	d, release := r.acquire()
	defer release()
	now := r.s.tick()
	g.CreatedAt, g.UpdatedAt = now, now
	if _, ok := d.groups[g.ID]; !ok {
		d.groupOrder = append(d.groupOrder, g.ID)
	}
	d.groups[g.ID] = cloneGroup(g)
	return nil
}

func (r *GroupRepository) FindByID(_ context.Context, id string) (*entity.Group, error) {
	d, release := r.acquire()
	defer release()
	g, ok := d.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneGroup(g), nil
}

func (r *GroupRepository) FindActiveByID(_ context.Context, id string) (*entity.Group, error) {
	d, release := r.acquire()
	defer release()
	g, ok := d.groups[id]
	if !ok || !g.State.IsActive() {
		return nil, repository.ErrNotFound
	}
	return cloneGroup(g), nil
}

func (r *GroupRepository) FindAll(_ context.Context) ([]*entity.Group, error) {
	d, release := r.acquire()
	defer release()
	out := make([]*entity.Group, 0, len(d.groupOrder))
	for _, id := range d.groupOrder {
		out = append(out, cloneGroup(d.groups[id]))
	}
	return out, nil
}

func (r *GroupRepository) FindByUserID(_ context.Context, userID string) ([]*entity.Group, error) {
	d, release := r.acquire()
	defer release()
	out := make([]*entity.Group, 0)
	for _, id := range d.groupOrder {
		if g := d.groups[id]; g.HasReviewer(userID) {
			out = append(out, cloneGroup(g))
		}
	}
	return out, nil
}

func (r *GroupRepository) Save(_ context.Context, g *entity.Group) error {
	d, release := r.acquire()
	defer release()
	cur, ok := d.groups[g.ID]
	if !ok {
		return repository.ErrNotFound
	}
	g.CreatedAt = cur.CreatedAt
	g.UpdatedAt = r.s.tick()
	d.groups[g.ID] = cloneGroup(g)
	return nil
}

type LabelRepository struct{ base }

func (r *LabelRepository) FindByID(_ context.Context, id string) (*entity.Label, error) {
	d, release := r.acquire()
	defer release()
	l, ok := d.labels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *l
	return &c, nil
}

func (r *LabelRepository) FindByName(_ context.Context, name string) (*entity.Label, error) {
	d, release := r.acquire()
	defer release()
	for _, id := range d.labelOrder {
		if l := d.labels[id]; l.Name == name {
			c := *l
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *LabelRepository) FindAll(_ context.Context) ([]*entity.Label, error) {
	d, release := r.acquire()
	defer release()
	out := make([]*entity.Label, 0, len(d.labelOrder))
	for _, id := range d.labelOrder {
		c := *d.labels[id]
		out = append(out, &c)
	}
	return out, nil
}

// SaveAll inserts the labels; it writes nothing when any name is already taken.
func (r *LabelRepository) SaveAll(_ context.Context, labels []*entity.Label) error {
	d, release := r.acquire()
	defer release()
	batch := make(map[string]string, len(labels))
	for _, l := range labels {
		if id, dup := batch[l.Name]; dup && id != l.ID {
			return repository.ErrConflict
		}
		batch[l.Name] = l.ID
		if nameTaken(d, l) {
			return repository.ErrConflict
		}
	}
	for _, l := range labels {
		now := r.s.tick()
		l.CreatedAt, l.UpdatedAt = now, now
		if _, ok := d.labels[l.ID]; !ok {
			d.labelOrder = append(d.labelOrder, l.ID)
		}
		c := *l
		d.labels[l.ID] = &c
	}
	return nil
}

func (r *LabelRepository) Save(_ context.Context, l *entity.Label) error {
	d, release := r.acquire()
	defer release()
	cur, ok := d.labels[l.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if nameTaken(d, l) {
		return repository.ErrConflict
	}
	l.CreatedAt = cur.CreatedAt
	l.UpdatedAt = r.s.tick()
	c := *l
	d.labels[l.ID] = &c
	return nil
}

// nameTaken mirrors the UNIQUE constraint on labels.name.
func nameTaken(d *dataset, l *entity.Label) bool {
	for id, other := range d.labels {
		if id != l.ID && other.Name == l.Name {
			return true
		}
	}
	return false
}

type TemplateRepository struct{ base }

func (r *TemplateRepository) FindByID(_ context.Context, id string) (*entity.Template, error) {
	d, release := r.acquire()
	defer release()
	t, ok := d.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *TemplateRepository) FindAllOrderByTemplateNo(_ context.Context) ([]*entity.Template, error) {
	d, release := r.acquire()
	defer release()
	out := make([]*entity.Template, 0, len(d.templates))
	for _, t := range d.templates {
		c := *t
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TemplateNo != out[j].TemplateNo {
			return out[i].TemplateNo < out[j].TemplateNo
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type UserRepository struct{ base }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	d, release := r.acquire()
	defer release()
	now := r.s.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	if _, ok := d.users[u.ID]; !ok {
		d.userOrder = append(d.userOrder, u.ID)
	}
	c := *u
	d.users[u.ID] = &c
	return nil
}

func (r *UserRepository) FindActiveByID(_ context.Context, id string) (*entity.User, error) {
	d, release := r.acquire()
	defer release()
	u, ok := d.users[id]
	if !ok || !u.State.IsActive() {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepository) FindAllActive(_ context.Context) ([]*entity.User, error) {
	d, release := r.acquire()
	defer release()
	out := make([]*entity.User, 0, len(d.userOrder))
	for _, id := range d.userOrder {
		if u := d.users[id]; u.State.IsActive() {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

// Save keeps the stored role; only username, password hash and state change.
func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	d, release := r.acquire()
	defer release()
	cur, ok := d.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c := *cur
	c.Username = u.Username
	c.PasswordHash = u.PasswordHash
	c.State = u.State
	c.UpdatedAt = r.s.tick()
	d.users[u.ID] = &c
	u.Role, u.CreatedAt, u.UpdatedAt = c.Role, c.CreatedAt, c.UpdatedAt
	return nil
}

var (
	_ repository.GroupRepository    = (*GroupRepository)(nil)
	_ repository.LabelRepository    = (*LabelRepository)(nil)
	_ repository.TemplateRepository = (*TemplateRepository)(nil)
	_ repository.UserRepository     = (*UserRepository)(nil)
)
