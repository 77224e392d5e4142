package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

var userColumns = []string{"id", "email", "first_name", "last_name", "dealer_id", "status", "password_hash", "password_salt", "created_at"}

func (s *store) CreateUser(ctx context.Context, user *domain.User) error {
	query := builder().Insert(tableUsers).
		Columns("email", "first_name", "last_name", "dealer_id", "status", "password_hash", "password_salt").
		Values(user.Email, user.FirstName, user.LastName, user.DealerID, user.Status, user.UserPassword.Hash, user.UserPassword.Salt).
		Suffix("RETURNING id")

	var created struct {
		ID int64 `db:"id"`
	}
	if err := s.pool.Getx(ctx, &created, query); err != nil {
		return err
	}

	user.ID = created.ID
	return nil
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := builder().Select(userColumns...).
		From(tableUsers).
		Where(sq.Eq{"email": email})

	var selected domain.User
	err := s.pool.Getx(ctx, &selected, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) GetUserStatus(ctx context.Context, userID int64) (string, error) {
	query := builder().Select("status").
		From(tableUsers).
		Where(sq.Eq{"id": userID})

	var selected struct {
		Status string `db:"status"`
	}
	err := s.pool.Getx(ctx, &selected, query)
	if err != nil {
		return "", wrapErr(err)
	}

	return selected.Status, nil
}
