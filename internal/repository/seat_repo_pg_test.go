package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewSeatRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewSeatRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewAdminRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewAdminRepository(pool)
	assert.NotNil(t, repo)
}
