// Package repository provides PostgreSQL persistence for the
// storefront backend.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hfdstore/storefront/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRecord is a stored account, including the credential hash.
type UserRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Profile      models.ProfileData
}

// PostgresUserRepository implements user persistence on PostgreSQL.
type PostgresUserRepository struct {
	DB *sql.DB
}

// NewPostgresUserRepository creates a repository over the given handle.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// EmailExists reports whether an account with the given email exists.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("EmailExists failed: %w", err)
	}
	return exists, nil
}

// Create inserts a new account.
func (r *PostgresUserRepository) Create(ctx context.Context, u UserRecord) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, name, email, password_hash, phone)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone,
	)
	if err != nil {
		return fmt.Errorf("Create user failed: %w", err)
	}
	return nil
}

// ByEmail loads an account by email. Returns ErrNotFound when absent.
func (r *PostgresUserRepository) ByEmail(ctx context.Context, email string) (UserRecord, error) {
	var u UserRecord
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name, email, password_hash, COALESCE(phone, '')
		   FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, ErrNotFound
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("ByEmail failed: %w", err)
	}
	return u, nil
}

// ProfileByID loads the shipping profile for a user.
func (r *PostgresUserRepository) ProfileByID(ctx context.Context, userID string) (UserRecord, error) {
	var u UserRecord
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, name, email, COALESCE(phone, ''),
		        COALESCE(address_line1, ''), COALESCE(address_line2, ''),
		        COALESCE(city, ''), COALESCE(state, ''), COALESCE(pincode, '')
		   FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone,
		&u.Profile.AddressLine1, &u.Profile.AddressLine2,
		&u.Profile.City, &u.Profile.State, &u.Profile.Pincode)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, ErrNotFound
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("ProfileByID failed: %w", err)
	}
	u.Profile.FullName = u.Name
	u.Profile.Phone = u.Phone
	return u, nil
}

// UpdateProfile writes the shipping profile fields for a user.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, userID string, p models.ProfileData) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE users
		    SET name = COALESCE(NULLIF($2, ''), name),
		        phone = $3,
		        address_line1 = $4, address_line2 = $5,
		        city = $6, state = $7, pincode = $8
		  WHERE id = $1`,
		userID, p.FullName, p.Phone,
		p.AddressLine1, p.AddressLine2, p.City, p.State, p.Pincode,
	)
	if err != nil {
		return fmt.Errorf("UpdateProfile failed: %w", err)
	}
	return nil
}

// Count returns the number of registered accounts.
func (r *PostgresUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count users failed: %w", err)
	}
	return n, nil
}
