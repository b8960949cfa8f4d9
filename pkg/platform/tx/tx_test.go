package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("nil transaction leaves context untouched", func(t *testing.T) {
		got := WithTx(ctx, nil)
		_, ok := From(got)
		assert.False(t, ok)
	})

	t.Run("stored transaction is returned", func(t *testing.T) {
		tx := &sql.Tx{}
		got, ok := From(WithTx(ctx, tx))
		assert.True(t, ok)
		assert.Same(t, tx, got)
	})
}

func TestOr(t *testing.T) {
	db := &sql.DB{}
	tx := &sql.Tx{}

	assert.Same(t, db, Or(context.Background(), db))
	assert.Same(t, tx, Or(WithTx(context.Background(), tx), db))
}
