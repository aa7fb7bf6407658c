package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SQLSTATE codes the user repository reacts to.
const (
	sqlStateUniqueViolation  = "23505"
	sqlStateNotNullViolation = "23502"
)

// violation describes a failed integrity constraint.
type violation struct {
	code       string
	constraint string
	column     string
}

// constraintViolation extracts the integrity violation behind err, if any.
// TranslateError turns unique violations into gorm.ErrDuplicatedKey, which
// drops the driver error, so that case is recognized separately.
func constraintViolation(err error) (violation, bool) {
	if err == nil {
		return violation{}, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return violation{
			code:       pgErr.Code,
			constraint: pgErr.ConstraintName,
			column:     pgErr.ColumnName,
		}, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return violation{code: sqlStateUniqueViolation}, true
	}

	return violation{}, false
}

func (v violation) unique() bool {
	return v.code == sqlStateUniqueViolation
}

func (v violation) notNull() bool {
	return v.code == sqlStateNotNullViolation
}
