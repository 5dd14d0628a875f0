package postgres

import (
	"database/sql"
	"errors"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

func (s *Store) CreateUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, name, created_at)
		VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.Name, user.CreatedAt)
	return err
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, name, created_at FROM users WHERE id = $1`, id)
	return scanUser(row, id)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, name, created_at FROM users WHERE email = $1`, email)
	return scanUser(row, email)
}

func scanUser(row *sql.Row, key string) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.NotFoundf("user %s", key)
		}
		return models.User{}, err
	}
	return u, nil
}
