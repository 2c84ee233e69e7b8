package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.AdminUser, error)
}

type PGAdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) AdminRepository {
	return &PGAdminRepository{db: db}
}

// GetByUserID returns (nil, nil) when the user has no admin record.
func (r *PGAdminRepository) GetByUserID(ctx context.Context, userID string) (*domain.AdminUser, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, email, role, created_at FROM admins WHERE user_id=$1`, userID)
	var a domain.AdminUser
	if err := row.Scan(&a.ID, &a.UserID, &a.Email, &a.Role, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

var _ AdminRepository = (*PGAdminRepository)(nil)
