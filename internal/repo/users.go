package repo

import (
	"context"
	"fmt"

	"github.com/strumhaus/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type userRepo struct {
	base
}

func NewUserRepo(db *sqlx.DB) *userRepo {
	return &userRepo{base: newBase(db)}
}

// AdminIDs lists every administrator account; the dispatcher fans
// notifications out to each of them.
func (r *userRepo) AdminIDs(ctx context.Context) ([]string, error) {
	query, args := r.qb.Select("user_id").
		From("users").
		Where(sq.Eq{"role": entities.RoleAdmin}).
		MustSql()

	var ids []string
	if err := r.selectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select admins: %w", err)
	}
	return ids, nil
}
