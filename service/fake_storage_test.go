package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

// memStore is an in-memory IStorage used to exercise services without Postgres.
type memStore struct {
	mu      sync.Mutex
	seq     int64
	clock   time.Time
	users   map[int64]*models.User
	clients map[int64]*models.Client
	drivers map[int64]*models.Driver
	classes map[int64]*models.RideClass
	options map[int64]*models.ExtraOption
	rides   map[int64]*models.Ride
	tokens  map[int64]*models.Token
	files   map[uuid.UUID]*models.FileMetadata
}

func newMemStore() *memStore {
	return &memStore{
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		users:   map[int64]*models.User{},
		clients: map[int64]*models.Client{},
		drivers: map[int64]*models.Driver{},
		classes: map[int64]*models.RideClass{},
		options: map[int64]*models.ExtraOption{},
		rides:   map[int64]*models.Ride{},
		tokens:  map[int64]*models.Token{},
		files:   map[uuid.UUID]*models.FileMetadata{},
	}
}

// tick returns a strictly increasing timestamp so updated_at ordering is deterministic.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) nextID() int64 {
	m.seq++
	return m.seq
}

func (m *memStore) User() storage.IUserStorage               { return memUsers{m} }
func (m *memStore) Client() storage.IClientStorage           { return memClients{m} }
func (m *memStore) Driver() storage.IDriverStorage           { return memDrivers{m} }
func (m *memStore) RideClass() storage.IRideClassStorage     { return memClasses{m} }
func (m *memStore) ExtraOption() storage.IExtraOptionStorage { return memOptions{m} }
func (m *memStore) Ride() storage.IRideStorage               { return memRides{m} }
func (m *memStore) Token() storage.ITokenStorage             { return memTokens{m} }
func (m *memStore) File() storage.IFileStorage               { return memFiles{m} }
func (m *memStore) Ping(context.Context) error               { return nil }
func (m *memStore) Close()                                   {}

func paginate[T any](items []T, q models.ListQuery) []T {
	start := q.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func strPtr(s string) *string { return &s }

func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func sortByID[T any](items []T, id func(T) int64, desc bool) {
	sort.Slice(items, func(i, j int) bool {
		if desc {
			return id(items[i]) > id(items[j])
		}
		return id(items[i]) < id(items[j])
	})
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Username == u.Username {
			return nil, storage.ErrConflict
		}
	}
	c := *u
	c.ID = r.m.nextID()
	c.CreatedAt, c.UpdatedAt = r.m.tick(), r.m.clock
	r.m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r memUsers) Update(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	existing, ok := r.m.users[u.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	existing.Username, existing.FullName, existing.Role, existing.AvatarFileID = u.Username, u.FullName, u.Role, u.AvatarFileID
	existing.UpdatedAt = r.m.tick()
	out := *existing
	return &out, nil
}

func (r memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	existing, ok := r.m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	existing.PasswordHash = hash
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r memUsers) List(_ context.Context, q models.ListQuery) ([]*models.User, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.User
	for _, u := range r.m.users {
		if matches(q.Search, u.Username, u.FullName) {
			c := *u
			all = append(all, &c)
		}
	}
	sortByID(all, func(u *models.User) int64 { return u.ID }, q.Desc)
	return paginate(all, q), len(all), nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.m.users, id)
	for tid, t := range r.m.tokens {
		if t.UserID == id {
			delete(r.m.tokens, tid)
		}
	}
	return nil
}

type memClients struct{ m *memStore }

func (r memClients) Create(_ context.Context, c *models.Client) (*models.Client, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.clients {
		if existing.Phone == c.Phone {
			return nil, storage.ErrConflict
		}
	}
	cp := *c
	cp.ID = r.m.nextID()
	cp.CreatedAt, cp.UpdatedAt = r.m.tick(), r.m.clock
	r.m.clients[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memClients) Update(_ context.Context, c *models.Client) (*models.Client, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	existing, ok := r.m.clients[c.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = r.m.tick()
	r.m.clients[c.ID] = &cp
	out := cp
	return &out, nil
}

func (r memClients) GetByID(_ context.Context, id int64) (*models.Client, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.clients[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r memClients) List(_ context.Context, q models.ListQuery) ([]*models.Client, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.Client
	for _, c := range r.m.clients {
		if matches(q.Search, c.FirstName, c.LastName, c.Phone) {
			cp := *c
			all = append(all, &cp)
		}
	}
	sortByID(all, func(c *models.Client) int64 { return c.ID }, q.Desc)
	return paginate(all, q), len(all), nil
}

func (r memClients) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.clients[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.m.clients, id)
	return nil
}

type memDrivers struct{ m *memStore }

func (r memDrivers) Create(_ context.Context, d *models.Driver) (*models.Driver, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *d
	cp.ID = r.m.nextID()
	cp.CreatedAt, cp.UpdatedAt = r.m.tick(), r.m.clock
	r.m.drivers[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memDrivers) Update(_ context.Context, d *models.Driver) (*models.Driver, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.drivers[d.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *d
	cp.UpdatedAt = r.m.tick()
	r.m.drivers[d.ID] = &cp
	out := cp
	return &out, nil
}

func (r memDrivers) GetByID(_ context.Context, id int64) (*models.Driver, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.drivers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *d
	return &out, nil
}

func (r memDrivers) List(_ context.Context, q models.ListQuery, active *bool) ([]*models.Driver, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.Driver
	for _, d := range r.m.drivers {
		if active != nil && d.IsActive != *active {
			continue
		}
		if matches(q.Search, d.FirstName, d.LastName, d.Phone, d.LicensePlate) {
			cp := *d
			all = append(all, &cp)
		}
	}
	sortByID(all, func(d *models.Driver) int64 { return d.ID }, q.Desc)
	return paginate(all, q), len(all), nil
}

func (r memDrivers) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.drivers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.m.drivers, id)
	return nil
}

type memClasses struct{ m *memStore }

func (r memClasses) Create(_ context.Context, c *models.RideClass) (*models.RideClass, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.classes {
		if existing.Name == c.Name {
			return nil, storage.ErrConflict
		}
	}
	cp := *c
	cp.ID = r.m.nextID()
	r.m.classes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memClasses) Update(_ context.Context, c *models.RideClass) (*models.RideClass, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.classes[c.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	r.m.classes[c.ID] = &cp
	out := cp
	return &out, nil
}

func (r memClasses) GetByID(_ context.Context, id int64) (*models.RideClass, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.classes[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r memClasses) List(_ context.Context, q models.ListQuery) ([]*models.RideClass, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.RideClass
	for _, c := range r.m.classes {
		if matches(q.Search, c.Name) {
			cp := *c
			all = append(all, &cp)
		}
	}
	sortByID(all, func(c *models.RideClass) int64 { return c.ID }, q.Desc)
	return paginate(all, q), len(all), nil
}

func (r memClasses) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.classes[id]; !ok {
		return storage.ErrNotFound
	}
	for _, ride := range r.m.rides {
		if ride.RideClassID == id {
			return storage.ErrReference
		}
	}
	delete(r.m.classes, id)
	return nil
}

type memOptions struct{ m *memStore }

func (r memOptions) Create(_ context.Context, o *models.ExtraOption) (*models.ExtraOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.options {
		if existing.Name == o.Name {
			return nil, storage.ErrConflict
		}
	}
	cp := *o
	cp.ID = r.m.nextID()
	r.m.options[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memOptions) Update(_ context.Context, o *models.ExtraOption) (*models.ExtraOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.options[o.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *o
	r.m.options[o.ID] = &cp
	out := cp
	return &out, nil
}

func (r memOptions) GetByID(_ context.Context, id int64) (*models.ExtraOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.options[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *o
	return &out, nil
}

func (r memOptions) GetByIDs(_ context.Context, ids []int64) ([]*models.ExtraOption, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.ExtraOption
	for _, id := range ids {
		if o, ok := r.m.options[id]; ok {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memOptions) List(_ context.Context, q models.ListQuery) ([]*models.ExtraOption, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.ExtraOption
	for _, o := range r.m.options {
		if matches(q.Search, o.Name) {
			cp := *o
			all = append(all, &cp)
		}
	}
	sortByID(all, func(o *models.ExtraOption) int64 { return o.ID }, q.Desc)
	return paginate(all, q), len(all), nil
}

func (r memOptions) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.options[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.m.options, id)
	return nil
}

type memRides struct{ m *memStore }

func cloneRide(r *models.Ride) *models.Ride {
	cp := *r
	cp.Waypoints = append([]models.Location{}, r.Waypoints...)
	cp.ExtraOptions = append([]models.ExtraOption{}, r.ExtraOptions...)
	return &cp
}

func (r memRides) Create(_ context.Context, ride *models.Ride) (*models.Ride, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := cloneRide(ride)
	cp.ID = r.m.nextID()
	cp.CreatedAt, cp.UpdatedAt = r.m.tick(), r.m.clock
	for i := range cp.Waypoints {
		cp.Waypoints[i].RideID = cp.ID
	}
	r.m.rides[cp.ID] = cp
	return cloneRide(cp), nil
}

func (r memRides) Update(_ context.Context, ride *models.Ride) (*models.Ride, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	existing, ok := r.m.rides[ride.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := cloneRide(ride)
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = r.m.tick()
	r.m.rides[ride.ID] = cp
	return cloneRide(cp), nil
}

func (r memRides) GetByID(_ context.Context, id int64) (*models.Ride, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ride, ok := r.m.rides[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneRide(ride), nil
}

func (r memRides) List(_ context.Context, q models.ListQuery, f models.RideFilter) ([]*models.Ride, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.Ride
	for _, ride := range r.m.rides {
		if f.Status != "" && ride.Status != f.Status {
			continue
		}
		if f.ClientID != nil && ride.ClientID != *f.ClientID {
			continue
		}
		if f.DriverID != nil && (ride.DriverID == nil || *ride.DriverID != *f.DriverID) {
			continue
		}
		if f.RideClassID != nil && ride.RideClassID != *f.RideClassID {
			continue
		}
		all = append(all, cloneRide(ride))
	}
	sortByID(all, func(r *models.Ride) int64 { return r.ID }, q.Desc)
	return paginate(all, q), len(all), nil
}

func (r memRides) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.rides[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.m.rides, id)
	return nil
}

type memTokens struct{ m *memStore }

func (r memTokens) Create(_ context.Context, t *models.Token) (*models.Token, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *t
	cp.ID = r.m.nextID()
	cp.CreatedAt, cp.UpdatedAt = r.m.tick(), r.m.clock
	r.m.tokens[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memTokens) Replace(_ context.Context, id int64, hash string, expiresAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[id]
	if !ok {
		return storage.ErrNotFound
	}
	t.Hash, t.ExpiresAt, t.UpdatedAt = hash, expiresAt, r.m.tick()
	return nil
}

func (r memTokens) GetByUser(_ context.Context, userID int64) ([]*models.Token, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Token
	for _, t := range r.m.tokens {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memTokens) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tokens[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.m.tokens, id)
	return nil
}

func (r memTokens) DeleteByUser(_ context.Context, userID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, t := range r.m.tokens {
		if t.UserID == userID {
			delete(r.m.tokens, id)
		}
	}
	return nil
}

func (m *memStore) tokenCount(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

type memFiles struct{ m *memStore }

func (r memFiles) Create(_ context.Context, f *models.FileMetadata) (*models.FileMetadata, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *f
	cp.CreatedAt = r.m.tick()
	r.m.files[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memFiles) GetByID(_ context.Context, id uuid.UUID) (*models.FileMetadata, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.files[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *f
	return &out, nil
}

func (r memFiles) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.files[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.m.files, id)
	return nil
}

// memObjects is an in-memory bucket.
type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}}
}

func (o *memObjects) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.objects[key] = data
	return nil
}

func (o *memObjects) Get(_ context.Context, key string) (io.ReadCloser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (o *memObjects) Delete(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.objects, key)
	return nil
}
