package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

var errStoreDown = errors.New("store down")

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.User
	writes int

	// afterKeyLookup runs once after GetByAuthKey has read the row
	afterKeyLookup func()
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{rows: map[int64]models.User{}}
	for _, u := range users {
		m.nextID++
		u.ID = m.nextID
		m.rows[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == u.Email {
			return apperrors.Conflict("A user with that email already exists")
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) GetAll(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, apperrors.NotFound("No users available in the collection")
	}
	out := make([]models.User, 0, len(m.rows))
	for _, u := range m.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) GetByAuthKey(_ context.Context, key string) (*models.User, error) {
	u, err := m.find(func(u models.User) bool { return u.AuthenticationKey != nil && *u.AuthenticationKey == key })

	m.mu.Lock()
	hook := m.afterKeyLookup
	m.afterKeyLookup = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	return u, err
}

func (m *memUsers) Update(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[u.ID]; !ok {
		return apperrors.NotFound("User with ID %d not found", u.ID)
	}
	m.writes++
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.NotFound("User with ID %d not found", id)
	}
	delete(m.rows, id)
	return nil
}

func (m *memUsers) stored(id int64) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

// memActivities fails Create/Update for names listed in failOn.
type memActivities struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Activity
	failOn map[string]bool
	calls  int
}

func newMemActivities() *memActivities {
	return &memActivities{rows: map[int64]models.Activity{}, failOn: map[string]bool{}}
}

func (m *memActivities) Create(_ context.Context, a *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failOn[a.Name] {
		return apperrors.Store("insert failed", errStoreDown)
	}
	m.nextID++
	a.ID = m.nextID
	m.rows[a.ID] = *a
	return nil
}

func (m *memActivities) GetAll(context.Context) ([]models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, apperrors.NotFound("No activities available")
	}
	out := make([]models.Activity, 0, len(m.rows))
	for _, a := range m.rows {
		out = append(out, a)
	}
	return out, nil
}

func (m *memActivities) GetByID(_ context.Context, id int64) (*models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Activity with ID %d not found", id)
	}
	return &a, nil
}

func (m *memActivities) Update(_ context.Context, a *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.rows[a.ID]; !ok {
		return apperrors.NotFound("Activity with ID %d not found", a.ID)
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *memActivities) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.NotFound("Activity with ID %d not found", id)
	}
	delete(m.rows, id)
	return nil
}

type memRooms struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Room
}

func newMemRooms() *memRooms {
	return &memRooms{rows: map[int64]models.Room{}}
}

func (m *memRooms) Create(_ context.Context, r *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.rows[r.ID] = *r
	return nil
}

func (m *memRooms) GetAll(context.Context) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil, apperrors.NotFound("No rooms available")
	}
	out := make([]models.Room, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRooms) GetByID(_ context.Context, id int64) (*models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Room with ID %d not found", id)
	}
	return &r, nil
}

func (m *memRooms) Update(_ context.Context, r *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[r.ID]; !ok {
		return apperrors.NotFound("Room with ID %d not found", r.ID)
	}
	m.rows[r.ID] = *r
	return nil
}

func (m *memRooms) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.NotFound("Room with ID %d not found", id)
	}
	delete(m.rows, id)
	return nil
}

type memBookings struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Booking
}

func (m *memBookings) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[int64]models.Booking{}
	}
	m.nextID++
	b.ID = m.nextID
	m.rows[b.ID] = *b
	return nil
}

func (m *memBookings) GetAll(context.Context) ([]models.Booking, error) {
	return nil, apperrors.NotFound("No bookings available")
}

func (m *memBookings) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, apperrors.NotFound("Booking with ID %d not found", id)
	}
	return &b, nil
}

func (m *memBookings) GetByUserID(context.Context, int64) ([]models.UserBooking, error) {
	return []models.UserBooking{}, nil
}

func (m *memBookings) Update(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[b.ID]; !ok {
		return apperrors.NotFound("Booking with ID %d not found", b.ID)
	}
	m.rows[b.ID] = *b
	return nil
}

func (m *memBookings) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.NotFound("Booking with ID %d not found", id)
	}
	delete(m.rows, id)
	return nil
}

// memCache mirrors the Valkey cache: Fill does not overwrite, Revoke leaves a marker.
type memCache struct {
	mu      sync.Mutex
	entries map[string]models.User
	revoked map[string]bool
	gets    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]models.User{}, revoked: map[string]bool{}}
}

func (c *memCache) Get(_ context.Context, key string) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	u, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (c *memCache) Fill(_ context.Context, key string, u *models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok || c.revoked[key] {
		return nil
	}
	c.entries[key] = *u
	return nil
}

func (c *memCache) Revoke(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.revoked[key] = true
	return nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	events   []any
}

func (p *recordingPublisher) Publish(subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.events = append(p.events, data)
	return nil
}
