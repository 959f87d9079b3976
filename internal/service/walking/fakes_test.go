package walking

import (
	"context"
	"strings"

	"dog_walking/internal/domain"
	"dog_walking/internal/model"
)

type fakeClients struct {
	rows    map[uint]*model.Client
	nextID  uint
	calls   []string
	lastCtx context.Context
}

func newFakeClients() *fakeClients {
	return &fakeClients{rows: map[uint]*model.Client{}}
}

func (f *fakeClients) Add(ctx context.Context, c *model.Client) error {
	f.calls = append(f.calls, "Add")
	f.lastCtx = ctx
	f.nextID++
	c.ID = f.nextID
	c.IsActive = true
	c.CreatedBy = domain.ActorFrom(ctx)
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeClients) Update(ctx context.Context, c *model.Client) error {
	f.calls = append(f.calls, "Update")
	row, ok := f.rows[c.ID]
	if !ok || !row.IsActive {
		return domain.ErrNotFound
	}
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeClients) SoftDelete(ctx context.Context, c *model.Client) error {
	f.calls = append(f.calls, "SoftDelete")
	f.rows[c.ID].IsActive = false
	return nil
}

func (f *fakeClients) GetByID(ctx context.Context, id uint) (*model.Client, error) {
	f.calls = append(f.calls, "GetByID")
	row, ok := f.rows[id]
	if !ok || !row.IsActive {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeClients) GetAll(ctx context.Context) ([]model.Client, error) {
	out := []model.Client{}
	for id := uint(1); id <= f.nextID; id++ {
		if row, ok := f.rows[id]; ok && row.IsActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeClients) Search(ctx context.Context, term string) ([]model.Client, error) {
	f.calls = append(f.calls, "Search:"+term)
	all, _ := f.GetAll(ctx)
	out := []model.Client{}
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeDogs struct {
	rows   map[uint]*model.Dog
	nextID uint
	calls  []string
}

func newFakeDogs() *fakeDogs {
	return &fakeDogs{rows: map[uint]*model.Dog{}}
}

func (f *fakeDogs) Add(ctx context.Context, d *model.Dog) error {
	f.calls = append(f.calls, "Add")
	f.nextID++
	d.ID = f.nextID
	d.IsActive = true
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDogs) Update(ctx context.Context, d *model.Dog) error {
	f.calls = append(f.calls, "Update")
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDogs) SoftDelete(ctx context.Context, d *model.Dog) error {
	f.calls = append(f.calls, "SoftDelete")
	f.rows[d.ID].IsActive = false
	return nil
}

func (f *fakeDogs) GetByID(ctx context.Context, id uint) (*model.Dog, error) {
	f.calls = append(f.calls, "GetByID")
	row, ok := f.rows[id]
	if !ok || !row.IsActive {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeDogs) GetAll(ctx context.Context) ([]model.Dog, error) {
	out := []model.Dog{}
	for id := uint(1); id <= f.nextID; id++ {
		if row, ok := f.rows[id]; ok && row.IsActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeDogs) Search(ctx context.Context, term string) ([]model.Dog, error) {
	f.calls = append(f.calls, "Search:"+term)
	return f.GetAll(ctx)
}

func (f *fakeDogs) GetByClient(ctx context.Context, clientID uint) ([]model.Dog, error) {
	all, _ := f.GetAll(ctx)
	out := []model.Dog{}
	for _, d := range all {
		if d.ClientID == clientID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeWalks struct {
	rows   map[uint]*model.Walk
	nextID uint
	calls  []string
	err    error
}

func newFakeWalks() *fakeWalks {
	return &fakeWalks{rows: map[uint]*model.Walk{}}
}

func (f *fakeWalks) Add(ctx context.Context, w *model.Walk) error {
	f.calls = append(f.calls, "Add")
	if f.err != nil {
		return f.err
	}
	f.nextID++
	w.ID = f.nextID
	w.IsActive = true
	cp := *w
	f.rows[w.ID] = &cp
	return nil
}

func (f *fakeWalks) Update(ctx context.Context, w *model.Walk) error {
	f.calls = append(f.calls, "Update")
	cp := *w
	f.rows[w.ID] = &cp
	return nil
}

func (f *fakeWalks) SoftDelete(ctx context.Context, w *model.Walk) error {
	f.calls = append(f.calls, "SoftDelete")
	f.rows[w.ID].IsActive = false
	return nil
}

func (f *fakeWalks) GetByID(ctx context.Context, id uint) (*model.Walk, error) {
	f.calls = append(f.calls, "GetByID")
	row, ok := f.rows[id]
	if !ok || !row.IsActive {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeWalks) GetAll(ctx context.Context) ([]model.Walk, error) {
	out := []model.Walk{}
	for id := uint(1); id <= f.nextID; id++ {
		if row, ok := f.rows[id]; ok && row.IsActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeWalks) Search(ctx context.Context, term string) ([]model.Walk, error) {
	f.calls = append(f.calls, "Search:"+term)
	return f.GetAll(ctx)
}

func (f *fakeWalks) GetByDog(ctx context.Context, dogID uint) ([]model.Walk, error) {
	all, _ := f.GetAll(ctx)
	out := []model.Walk{}
	for _, w := range all {
		if w.DogID == dogID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWalks) GetUnsynced(ctx context.Context) ([]model.Walk, error) {
	return nil, nil
}

func (f *fakeWalks) MarkSynced(ctx context.Context, walk *model.Walk) (bool, error) {
	return true, nil
}

type fakeUsers struct {
	rows map[string]*model.User
	adds int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: map[string]*model.User{}}
}

func (f *fakeUsers) Add(ctx context.Context, u *model.User) error {
	if _, ok := f.rows[u.Username]; ok {
		return domain.ErrConflict
	}
	f.adds++
	u.ID = uint(len(f.rows) + 1)
	cp := *u
	f.rows[u.Username] = &cp
	return nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row, ok := f.rows[username]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}
