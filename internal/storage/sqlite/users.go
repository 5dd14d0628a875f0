package sqlite

import (
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

func (s *Store) CreateUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, name, created_at)
		VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, name, created_at FROM users WHERE id = ?`, id)
	return scanUser(row, id)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, name, created_at FROM users WHERE email = ?`, email)
	return scanUser(row, email)
}

func scanUser(row *sql.Row, key string) (models.User, error) {
	var u models.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.NotFoundf("user %s", key)
		}
		return models.User{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t
	}
	return u, nil
}
