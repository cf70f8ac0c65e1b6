package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"trainingLog/internal/db"
	"trainingLog/models"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with an already hashed password.
// Returns the created User with its generated ID.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id, err := db.InsertReturningID(ctx, r.db, `INSERT INTO users (username, password) VALUES (?, ?)`, username, passwordHash)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: username, Password: passwordHash}, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`SELECT id, username, password FROM users WHERE username = ?`), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Usernames returns every distinct username in ascending order.
func (r *UserRepository) Usernames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var names []string
	if err := r.db.SelectContext(ctx, &names, `SELECT username FROM users GROUP BY username ORDER BY username`); err != nil {
		return nil, err
	}
	return names, nil
}
