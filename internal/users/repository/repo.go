package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gigflow/gigflow-backend/internal/storage/postgres"
	"github.com/gigflow/gigflow-backend/internal/users/domain"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, user_type,
       category_id, phone_number, resume, is_staff, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var userType, phone, resume sql.NullString
	var categoryID sql.NullInt64

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&userType,
		&categoryID,
		&phone,
		&resume,
		&u.IsStaff,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Handle nullable fields
	if userType.Valid {
		u.UserType = &userType.String
	}
	if categoryID.Valid {
		u.CategoryID = &categoryID.Int64
	}
	if phone.Valid {
		u.PhoneNumber = &phone.String
	}
	if resume.Valid {
		u.Resume = &resume.String
	}
	return &u, nil
}

// GetByID retrieves a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername retrieves a user for login.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Create inserts user and fills in the generated columns.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name,
		                   user_type, category_id, phone_number, resume)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_staff, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.UserType,
		user.CategoryID,
		user.PhoneNumber,
		user.Resume,
	).Scan(&user.ID, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapWriteError("create user", err)
	}
	return nil
}

// Update writes every mutable column of user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, first_name = $5, last_name = $6,
		    user_type = $7, category_id = $8, phone_number = $9, resume = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.UserType,
		user.CategoryID,
		user.PhoneNumber,
		user.Resume,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return mapWriteError("update user", err)
	}
	return nil
}

// Delete removes the user; their projects and sample works cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapWriteError(op string, err error) error {
	if constraint, ok := postgres.UniqueViolation(err); ok {
		switch constraint {
		case "users_username_key":
			return &domain.FieldError{Field: "username", Message: "A user with that username already exists."}
		case "users_phone_number_key":
			return &domain.FieldError{Field: "phone_number", Message: "user with this phone number already exists."}
		}
	}
	if _, ok := postgres.ForeignKeyViolation(err); ok {
		return &domain.FieldError{Field: "category", Message: "Invalid pk - object does not exist."}
	}
	return fmt.Errorf("%s: %w", op, err)
}
