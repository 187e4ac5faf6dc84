package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	"github.com/sakahan-app/sakahan-backend/internal/models"
	"github.com/sakahan-app/sakahan-backend/internal/utils/mapping"
)

const plotColumns = `
	plot_id, name, location, area_hectares, crop, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPlotRepository struct {
	BaseRepository
}

// newPgxPlotRepository creates a new repository for land plot data.
func newPgxPlotRepository(pool *pgxpool.Pool) portsrepo.PlotRepositoryFacade {
	return &PgxPlotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PlotRepositoryFacade = (*PgxPlotRepository)(nil)

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var m models.Plot
	err := row.Scan(
		&m.PlotID,
		&m.Name,
		&m.Location,
		&m.AreaHectares,
		&m.Crop,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainPlot(m)
	return &p, nil
}

// SavePlot persists a new plot.
func (r *PgxPlotRepository) SavePlot(ctx context.Context, plot domain.Plot) error {
	m := mapping.ToModelPlot(plot)
	query := `
		INSERT INTO plots (` + plotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PlotID,
		m.Name,
		m.Location,
		m.AreaHectares,
		m.Crop,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert plot "+m.PlotID, err)
	}
	return nil
}

// FindPlotByID retrieves a plot by ID.
func (r *PgxPlotRepository) FindPlotByID(ctx context.Context, plotID string) (*domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE plot_id = $1;`

	plot, err := scanPlot(r.Pool.QueryRow(ctx, query, plotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find plot by ID "+plotID, err)
	}
	return plot, nil
}

// ListPlots retrieves a paginated list of plots.
func (r *PgxPlotRepository) ListPlots(ctx context.Context, limit int, offset int) ([]domain.Plot, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + plotColumns + `
		FROM plots
		ORDER BY is_active DESC, name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query plots", err)
	}
	defer rows.Close()

	plots := []domain.Plot{}
	for rows.Next() {
		plot, err := scanPlot(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan plot row", err)
		}
		plots = append(plots, *plot)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating plot rows", err)
	}
	return plots, nil
}

// UpdatePlot updates a plot's fields.
func (r *PgxPlotRepository) UpdatePlot(ctx context.Context, plot domain.Plot) error {
	m := mapping.ToModelPlot(plot)
	query := `
		UPDATE plots
		SET name = $2,
		    location = $3,
		    area_hectares = $4,
		    crop = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE plot_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PlotID,
		m.Name,
		m.Location,
		m.AreaHectares,
		m.Crop,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update plot "+m.PlotID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("plot " + m.PlotID + " not found for update")
	}
	return nil
}

// DeactivatePlot marks a plot as inactive.
func (r *PgxPlotRepository) DeactivatePlot(ctx context.Context, plotID string, userID string, now time.Time) error {
	query := `
		UPDATE plots
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE plot_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, plotID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate plot "+plotID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("plot " + plotID + " not found or already inactive")
	}
	return nil
}
