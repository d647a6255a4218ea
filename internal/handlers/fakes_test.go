package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/models"
)

// table - простое хранилище в памяти для тестов хендлеров
type table[T any] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64
	entity string
	empty  string
	id     func(*T) *int64
	err    error
}

func newTable[T any](entity, empty string, id func(*T) *int64) *table[T] {
	return &table[T]{rows: map[int64]T{}, entity: entity, empty: empty, id: id}
}

func (t *table[T]) Create(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.nextID++
	*t.id(v) = t.nextID
	t.rows[t.nextID] = *v
	return nil
}

func (t *table[T]) GetAll(context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	if len(t.rows) == 0 {
		return nil, apperrors.NotFound(t.empty)
	}
	return t.sorted(), nil
}

func (t *table[T]) sorted() []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) GetByID(_ context.Context, id int64) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	v, ok := t.rows[id]
	if !ok {
		return nil, apperrors.NotFound("%s with ID %d not found", t.entity, id)
	}
	return &v, nil
}

func (t *table[T]) Update(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	id := *t.id(v)
	if _, ok := t.rows[id]; !ok {
		return apperrors.NotFound("%s with ID %d not found", t.entity, id)
	}
	t.rows[id] = *v
	return nil
}

func (t *table[T]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return apperrors.NotFound("%s with ID %d not found", t.entity, id)
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) find(match func(T) bool) (*T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range t.sorted() {
		if match(v) {
			return &v, true
		}
	}
	return nil, false
}

type sessionTable struct{ *table[models.Session] }

func (s sessionTable) GetTop(ctx context.Context, limit int) ([]models.Session, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type bookingTable struct{ *table[models.Booking] }

// Create и Update ведут себя как репозиторий: время создания ставит хранилище и больше не меняет
func (b bookingTable) Create(ctx context.Context, v *models.Booking) error {
	v.CreatedDatetime = time.Now().UTC().Truncate(time.Second)
	return b.table.Create(ctx, v)
}

func (b bookingTable) Update(ctx context.Context, v *models.Booking) error {
	stored, err := b.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	v.CreatedDatetime = stored.CreatedDatetime
	return b.table.Update(ctx, v)
}

func (b bookingTable) GetByUserID(_ context.Context, userID int64) ([]models.UserBooking, error) {
	out := []models.UserBooking{}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, row := range b.sorted() {
		if row.UserID == userID {
			out = append(out, models.UserBooking{Booking: row})
		}
	}
	return out, nil
}

type blogTable struct{ *table[models.Blog] }

func (b blogTable) GetByUserID(_ context.Context, userID int64) ([]models.Blog, error) {
	out := []models.Blog{}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, row := range b.sorted() {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type userTable struct{ *table[models.User] }

func (u userTable) Create(ctx context.Context, user *models.User) error {
	if _, ok := u.find(func(row models.User) bool { return row.Email == user.Email }); ok {
		return apperrors.Conflict("A user with that email already exists")
	}
	return u.table.Create(ctx, user)
}

func (u userTable) GetAll(ctx context.Context) ([]models.User, error) {
	return u.table.GetAll(ctx)
}

func (u userTable) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if row, ok := u.find(func(row models.User) bool { return row.Email == email }); ok {
		return row, nil
	}
	return nil, apperrors.NotFound("User not found")
}

func (u userTable) GetByAuthKey(_ context.Context, key string) (*models.User, error) {
	match := func(row models.User) bool {
		return row.AuthenticationKey != nil && *row.AuthenticationKey == key
	}
	if row, ok := u.find(match); ok {
		return row, nil
	}
	return nil, apperrors.NotFound("User not found")
}

type stores struct {
	activities *table[models.Activity]
	rooms      *table[models.Room]
	sessions   sessionTable
	bookings   bookingTable
	blogs      blogTable
	users      userTable
}

func newStores() *stores {
	return &stores{
		activities: newTable("Activity", "No activities available", func(a *models.Activity) *int64 { return &a.ID }),
		rooms:      newTable("Room", "No rooms available", func(r *models.Room) *int64 { return &r.ID }),
		sessions:   sessionTable{newTable("Session", "No sessions available", func(s *models.Session) *int64 { return &s.ID })},
		bookings:   bookingTable{newTable("Booking", "No bookings available", func(b *models.Booking) *int64 { return &b.ID })},
		blogs:      blogTable{newTable("Blog", "No blogs available", func(b *models.Blog) *int64 { return &b.ID })},
		users:      userTable{newTable("User", "No users available in the collection", func(u *models.User) *int64 { return &u.ID })},
	}
}
