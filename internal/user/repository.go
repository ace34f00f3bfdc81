package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrUserExists = errors.New("username or email already registered")
)

type Repository interface {
	Create(ctx context.Context, u *User) (uuid.UUID, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &postgresRepository{db: db}
}

// Create inserts the user and relies on the unique constraints on username and
// email as the only duplicate detection. There is no pre-query, so two
// concurrent registrations cannot both slip through.
func (r *postgresRepository) Create(ctx context.Context, u *User) (uuid.UUID, error) {
	userID := u.ID
	if userID == uuid.Nil {
		genID, err := uuid.NewV4()
		if err != nil {
			return uuid.Nil, fmt.Errorf("repository: failed to generate user ID: %w", err)
		}
		userID = genID
	}
	u.ID = userID

	createdAt := time.Now().UTC()

	query := `
		INSERT INTO users (id, username, password_hash, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, userID, u.Username, u.PasswordHash, u.Email, createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, ErrUserExists
		}
		return uuid.Nil, fmt.Errorf("repository: failed to insert user: %w", err)
	}

	u.CreatedAt = createdAt
	return userID, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, email, created_at
		FROM users
		WHERE username = $1
	`

	var u User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select user by username %q: %w", username, err)
	}

	return &u, nil
}
