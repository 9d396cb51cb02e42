package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"finai/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

// UserStore persists accounts. Emails are compared lower-cased.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateToken(ctx context.Context, id, token string) error
	UpdateSubscription(ctx context.Context, id, tier, status string) error
}

type SQLUserStore struct {
	conn *sql.DB
	now  func() time.Time
}

func NewUserStore(conn *sql.DB) *SQLUserStore {
	return &SQLUserStore{conn: conn, now: time.Now}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const userColumns = `id, first_name, last_name, email, password_hash, subscription_tier, subscription_status, token, created_at, updated_at`

// CreateUser fills in ID, timestamps and defaults before inserting.
func (s *SQLUserStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = "free"
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = "active"
	}
	now := s.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash,
		u.SubscriptionTier, u.SubscriptionStatus, u.Token, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, NormalizeEmail(email))
	return scanUser(row)
}

func (s *SQLUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *SQLUserStore) UpdateToken(ctx context.Context, id, token string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE users SET token = $1, updated_at = $2 WHERE id = $3`,
		token, s.now().UTC(), id,
	)
	return checkAffected(res, err)
}

func (s *SQLUserStore) UpdateSubscription(ctx context.Context, id, tier, status string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE users SET subscription_tier = $1, subscription_status = $2, updated_at = $3 WHERE id = $4`,
		tier, status, s.now().UTC(), id,
	)
	return checkAffected(res, err)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.SubscriptionTier, &u.SubscriptionStatus, &u.Token, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func checkAffected(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
