package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))

	// Raw pgx error for a sequence collision between concurrent sends to
	// one companion thread; this must be classified as retryable.
	raw := errors.New(`ERROR: duplicate key value violates unique constraint "idx_companion_thread_seq" (SQLSTATE 23505)`)
	assert.True(t, isUniqueConstraintViolation(raw))

	assert.False(t, isUniqueConstraintViolation(errors.New("connection reset")))
	assert.False(t, isUniqueConstraintViolation(gorm.ErrForeignKeyViolated))
}

func TestIsForeignKeyConstraintViolation(t *testing.T) {
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))

	raw := errors.New(`ERROR: insert or update on table "companion_messages" violates foreign key constraint (SQLSTATE 23503)`)
	assert.True(t, isForeignKeyConstraintViolation(raw))

	assert.False(t, isForeignKeyConstraintViolation(gorm.ErrDuplicatedKey))
}
