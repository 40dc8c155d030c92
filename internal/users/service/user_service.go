package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	authdomain "github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/users/domain"
)

// Store is the persistence the service needs; *repository.UserRepository
// satisfies it.
type Store interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	store Store
	cost  int
	dummy []byte
}

func NewUserService(store Store) *UserService {
	return newUserService(store, bcrypt.DefaultCost)
}

func newUserService(store Store, cost int) *UserService {
	// compared against when the username is unknown so both paths hash
	dummy, _ := bcrypt.GenerateFromPassword([]byte("gigflow-dummy-password"), cost)
	return &UserService{store: store, cost: cost, dummy: dummy}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserType:     req.UserType,
		CategoryID:   req.CategoryID,
		PhoneNumber:  req.PhoneNumber,
		Resume:       req.Resume,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// hashPassword bcrypts password. bcrypt only takes 72 bytes, which
// multi-byte passwords can pass while staying under the rune limit.
func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", &domain.FieldError{Field: "password", Message: "Ensure this field has no more than 72 bytes."}
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.GetByID(ctx, id)
}

// ownedBy loads targetID and checks it is the caller. An unknown id wins
// over a foreign one.
func (s *UserService) ownedBy(ctx context.Context, callerID, targetID int64) (*domain.User, error) {
	user, err := s.store.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.ID != callerID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// Update applies a partial update to the caller's own account.
func (s *UserService) Update(ctx context.Context, callerID, targetID int64, req *domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.ownedBy(ctx, callerID, targetID)
	if err != nil {
		return nil, err
	}

	req.Apply(user)
	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the caller's own account.
func (s *UserService) Delete(ctx context.Context, callerID, targetID int64) error {
	if _, err := s.ownedBy(ctx, callerID, targetID); err != nil {
		return err
	}
	return s.store.Delete(ctx, targetID)
}

// PrincipalByID resolves the subject of an access token.
func (s *UserService) PrincipalByID(ctx context.Context, id int64) (*authdomain.Principal, error) {
	user, err := s.store.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, authdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*authdomain.Principal, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return nil, authdomain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, authdomain.ErrInvalidCredentials
	}
	return user.Principal(), nil
}
