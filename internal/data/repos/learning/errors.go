package learning

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/fundocs-backend/internal/pkg/errors"
)

const pgUniqueViolation = "23505"

// translateError maps duplicate-key failures from either driver to ErrConflict.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", pkgerrors.ErrConflict, pgErr.ConstraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", pkgerrors.ErrConflict, err)
	}
	return err
}
