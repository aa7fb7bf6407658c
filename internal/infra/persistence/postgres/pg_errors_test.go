package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolation(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantOK      bool
		wantUnique  bool
		wantNotNull bool
		wantName    string
	}{
		{name: "nil"},
		{name: "unrelated", err: errors.New("connection refused")},
		{name: "translated duplicate", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), wantOK: true, wantUnique: true},
		{
			name:       "driver unique violation",
			err:        errors.WithStack(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}),
			wantOK:     true,
			wantUnique: true,
			wantName:   "idx_users_email",
		},
		{
			name:        "driver not null violation",
			err:         &pgconn.PgError{Code: "23502", ColumnName: "email"},
			wantOK:      true,
			wantNotNull: true,
		},
		{name: "non integrity driver error", err: &pgconn.PgError{Code: "57014"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := constraintViolation(tt.err)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantUnique, got.unique())
			assert.Equal(t, tt.wantNotNull, got.notNull())
			assert.Equal(t, tt.wantName, got.constraint)
		})
	}
}
