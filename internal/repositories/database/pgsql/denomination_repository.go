package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
)

type pgxDenominationRepository struct {
	BaseRepository
}

func newPgxDenominationRepository(pool *pgxpool.Pool, maxRetries int) portsrepo.DenominationRepository {
	return &pgxDenominationRepository{BaseRepository: BaseRepository{Pool: pool, MaxRetries: maxRetries}}
}

func (r *pgxDenominationRepository) FindDenominationByID(ctx context.Context, denominationID string) (*domain.Denomination, error) {
	query := `SELECT denomination_id, name, value, currency FROM denominations WHERE denomination_id = $1`

	var d domain.Denomination
	err := r.Pool.QueryRow(ctx, query, denominationID).Scan(&d.DenominationID, &d.Name, &d.Value, &d.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find denomination", err)
	}
	return &d, nil
}

func (r *pgxDenominationRepository) ListDenominations(ctx context.Context) ([]domain.Denomination, error) {
	query := `SELECT denomination_id, name, value, currency FROM denominations ORDER BY value DESC`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list denominations", err)
	}
	defer rows.Close()

	denominations := make([]domain.Denomination, 0)
	for rows.Next() {
		var d domain.Denomination
		if err := rows.Scan(&d.DenominationID, &d.Name, &d.Value, &d.Currency); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan denomination", err)
		}
		denominations = append(denominations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read denominations", err)
	}
	return denominations, nil
}

func (r *pgxDenominationRepository) SaveDenomination(ctx context.Context, denomination domain.Denomination) error {
	query := `
		INSERT INTO denominations (denomination_id, name, value, currency)
		VALUES ($1, $2, $3, $4)`

	_, err := r.Pool.Exec(ctx, query,
		denomination.DenominationID, denomination.Name, denomination.Value, denomination.Currency,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save denomination", err)
	}
	return nil
}
