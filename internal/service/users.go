package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/logger"
	"gymhub/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByAuthKey(ctx context.Context, key string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	repo       UserStore
	cache      SessionCache
	publisher  Publisher
	bcryptCost int
}

// NewUserService accepts a nil cache.
func NewUserService(repo UserStore, cache SessionCache, publisher Publisher, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &UserService{repo: repo, cache: cache, publisher: publisher, bcryptCost: bcryptCost}
}

// HashPassword hashes plain text; a value that already is a bcrypt hash is returned unchanged.
func HashPassword(password string, cost int) (string, error) {
	if _, err := bcrypt.Cost([]byte(password)); err == nil {
		return password, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func hashError(err error) error {
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return apperrors.Validation("user_password must be at most 72 bytes")
	}
	return apperrors.Store("failed to hash password", err)
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a Member account regardless of anything else in the request.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	u := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		Role:      models.RoleMember,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := s.create(ctx, u); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, models.EventUserRegistered, models.UserRegisteredEvent{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Timestamp: time.Now(),
	})
	return u, nil
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	u := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := s.create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) create(ctx context.Context, u *models.User) error {
	hash, err := HashPassword(u.Password, s.bcryptCost)
	if err != nil {
		return hashError(err)
	}
	u.Password = hash
	u.AuthenticationKey = nil

	if err := s.repo.Create(ctx, u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// EnsureAdmin creates an Admin account with the given credentials when no user owns the email yet.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	admin := &models.User{
		Email:     email,
		Password:  password,
		Role:      models.RoleAdmin,
		Firstname: "Admin",
		Lastname:  "Admin",
		Phone:     "0",
		Address:   "-",
	}
	if err := s.create(ctx, admin); err != nil {
		return err
	}
	logger.WithContext(ctx).Info("Seeded admin account", "user_id", admin.ID, "email", email)
	return nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByKey(ctx context.Context, key string) (*models.User, error) {
	return s.repo.GetByAuthKey(ctx, key)
}

// Update replaces the stored user. When the payload does not mention the
// authentication key the stored key is kept; an explicit null logs the user out.
func (s *UserService) Update(ctx context.Context, req *models.UpdateUserRequest) (*models.User, error) {
	id := req.ID.Int64()
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, hashError(err)
	}

	u := &models.User{
		ID:                id,
		Email:             req.Email,
		Password:          hash,
		Role:              req.Role,
		Firstname:         req.Firstname,
		Lastname:          req.Lastname,
		Phone:             req.Phone,
		Address:           req.Address,
		AuthenticationKey: stored.AuthenticationKey,
	}
	if req.AuthenticationKey.Set {
		u.AuthenticationKey = req.AuthenticationKey.Value
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	// role or email may have changed, drop whatever the gate cached
	s.forget(ctx, stored.AuthenticationKey)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.forget(ctx, stored.AuthenticationKey)
	return nil
}

// Login checks credentials and issues a fresh authentication key, replacing any previous one.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !CheckPassword(u.Password, password) {
		return "", apperrors.ErrInvalidCredentials
	}

	previous := u.AuthenticationKey
	key := uuid.New().String()
	u.AuthenticationKey = &key

	if err := s.repo.Update(ctx, u); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	s.forget(ctx, previous)

	publish(ctx, s.publisher, models.EventUserLoggedIn, models.UserLoggedInEvent{
		UserID:    u.ID,
		Timestamp: time.Now(),
	})
	return key, nil
}

func (s *UserService) Logout(ctx context.Context, key string) error {
	u, err := s.repo.GetByAuthKey(ctx, key)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	u.AuthenticationKey = nil
	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.forget(ctx, &key)
	return nil
}

// ResolveKey maps an authentication key to its user. Unknown keys yield
// errors.ErrKeyInvalid; store failures are passed through.
func (s *UserService) ResolveKey(ctx context.Context, key string) (*models.User, error) {
	if s.cache != nil {
		u, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.WithContext(ctx).Warn("Session cache lookup failed", "error", err)
		} else if u != nil {
			return u, nil
		}
	}

	u, err := s.repo.GetByAuthKey(ctx, key)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.ErrKeyInvalid
		}
		return nil, fmt.Errorf("resolve key: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Fill(ctx, key, u); err != nil {
			logger.WithContext(ctx).Warn("Session cache write failed", "error", err)
		}
	}
	return u, nil
}

func (s *UserService) forget(ctx context.Context, key *string) {
	if s.cache == nil || key == nil {
		return
	}
	if err := s.cache.Revoke(ctx, *key); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithContext(ctx).Warn("Session cache invalidation failed", "error", err)
	}
}
