package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
)

// ── users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ── tasks ─────────────────────────────────────────────────────────────────────

type stubTaskRepo struct {
	tasks     map[string]*domain.Task
	order     []string
	listCalls int
	nextID    int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	c := *t
	c.ID = fmt.Sprintf("t%d", r.nextID)
	r.tasks[c.ID] = &c
	r.order = append(r.order, c.ID)
	out := c
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	c := *t
	return &c, nil
}

func (r *stubTaskRepo) List(_ context.Context) ([]*domain.Task, error) {
	r.listCalls++
	out := make([]*domain.Task, 0, len(r.order))
	for _, id := range r.order {
		c := *r.tasks[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubTaskRepo) ListPage(ctx context.Context, page, size int) ([]*domain.Task, int64, error) {
	all, _ := r.List(ctx)
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := min(start+size, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if _, ok := r.tasks[t.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	c := *t
	r.tasks[t.ID] = &c
	out := c
	return &out, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── catalog ───────────────────────────────────────────────────────────────────

type stubCatalogRepo[T any] struct {
	items     map[string]*T
	notFound  error
	getID     func(*T) string
	setID     func(*T, string)
	listCalls int
	nextID    int
}

func (r *stubCatalogRepo[T]) List(_ context.Context) ([]*T, error) {
	r.listCalls++
	keys := make([]string, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		c := *r.items[k]
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubCatalogRepo[T]) FindByID(_ context.Context, id string) (*T, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, r.notFound
	}
	c := *it
	return &c, nil
}

func (r *stubCatalogRepo[T]) Create(_ context.Context, item *T) (*T, error) {
	r.nextID++
	c := *item
	r.setID(&c, fmt.Sprintf("c%d", r.nextID))
	r.items[r.getID(&c)] = &c
	out := c
	return &out, nil
}

func (r *stubCatalogRepo[T]) Update(_ context.Context, item *T) (*T, error) {
	id := r.getID(item)
	if _, ok := r.items[id]; !ok {
		return nil, r.notFound
	}
	c := *item
	r.items[id] = &c
	out := c
	return &out, nil
}

func (r *stubCatalogRepo[T]) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return r.notFound
	}
	delete(r.items, id)
	return nil
}

func newStubCategories() *stubCatalogRepo[domain.Category] {
	return &stubCatalogRepo[domain.Category]{
		items:    make(map[string]*domain.Category),
		notFound: domain.ErrCategoryNotFound,
		getID:    func(c *domain.Category) string { return c.ID },
		setID:    func(c *domain.Category, id string) { c.ID = id },
	}
}

func newStubMissions() *stubCatalogRepo[domain.Mission] {
	return &stubCatalogRepo[domain.Mission]{
		items:    make(map[string]*domain.Mission),
		notFound: domain.ErrMissionNotFound,
		getID:    func(m *domain.Mission) string { return m.ID },
		setID:    func(m *domain.Mission, id string) { m.ID = id },
	}
}

func newStubRewards() *stubCatalogRepo[domain.Reward] {
	return &stubCatalogRepo[domain.Reward]{
		items:    make(map[string]*domain.Reward),
		notFound: domain.ErrRewardNotFound,
		getID:    func(r *domain.Reward) string { return r.ID },
		setID:    func(r *domain.Reward, id string) { r.ID = id },
	}
}

// ── cache ─────────────────────────────────────────────────────────────────────

// stubCache stores JSON like the Redis cache so round-trips are realistic.
type stubCache struct {
	data    map[string]map[string][]byte
	failGet bool
	failSet bool
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, name, key string, dst any) (bool, error) {
	if c.failGet {
		return false, errors.New("cache unavailable")
	}
	raw, ok := c.data[name][key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *stubCache) Set(_ context.Context, name, key string, value any) error {
	if c.failSet {
		return errors.New("cache unavailable")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.data[name] == nil {
		c.data[name] = make(map[string][]byte)
	}
	c.data[name][key] = raw
	return nil
}

func (c *stubCache) Evict(_ context.Context, name, key string) error {
	delete(c.data[name], key)
	return nil
}

func (c *stubCache) Clear(_ context.Context, name string) error {
	delete(c.data, name)
	return nil
}

func (c *stubCache) has(name, key string) bool {
	_, ok := c.data[name][key]
	return ok
}

// ── events ────────────────────────────────────────────────────────────────────

type stubPublisher struct {
	events []domain.TaskCreatedEvent
	err    error
}

func (p *stubPublisher) PublishTaskCreated(_ context.Context, e domain.TaskCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type stubDedup struct {
	seen map[string]bool
	err  error
}

func (d *stubDedup) IsDuplicate(_ context.Context, taskID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.seen[taskID], nil
}

func (d *stubDedup) Mark(_ context.Context, taskID string) error {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	d.seen[taskID] = true
	return nil
}
