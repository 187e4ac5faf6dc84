package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakahan-app/sakahan-backend/internal/apperrors"
	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	portsrepo "github.com/sakahan-app/sakahan-backend/internal/core/ports/repositories"
	"github.com/sakahan-app/sakahan-backend/internal/models"
	"github.com/sakahan-app/sakahan-backend/internal/utils/mapping"
)

const assignmentColumns = `
	assignment_id, worker_id, plot_id, task, status, assigned_date, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAssignmentRepository struct {
	BaseRepository
}

// newPgxAssignmentRepository creates a new repository for work assignment data.
func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var m models.Assignment
	err := row.Scan(
		&m.AssignmentID,
		&m.WorkerID,
		&m.PlotID,
		&m.Task,
		&m.Status,
		&m.AssignedDate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	a := mapping.ToDomainAssignment(m)
	return &a, nil
}

// SaveAssignment persists a new assignment.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.Assignment) error {
	m := mapping.ToModelAssignment(assignment)
	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AssignmentID,
		m.WorkerID,
		m.PlotID,
		m.Task,
		m.Status,
		m.AssignedDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert assignment "+m.AssignmentID, err)
	}
	return nil
}

// FindAssignmentByID retrieves an assignment by ID.
func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE assignment_id = $1;`

	assignment, err := scanAssignment(r.Pool.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find assignment by ID "+assignmentID, err)
	}
	return assignment, nil
}

// ListAssignmentsByWorker retrieves a worker's assignments, newest first.
func (r *PgxAssignmentRepository) ListAssignmentsByWorker(ctx context.Context, workerID string, limit int, offset int) ([]domain.Assignment, error) {
	return r.listAssignments(ctx, `worker_id`, workerID, limit, offset)
}

// ListAssignmentsByPlot retrieves a plot's assignments, newest first.
func (r *PgxAssignmentRepository) ListAssignmentsByPlot(ctx context.Context, plotID string, limit int, offset int) ([]domain.Assignment, error) {
	return r.listAssignments(ctx, `plot_id`, plotID, limit, offset)
}

func (r *PgxAssignmentRepository) listAssignments(ctx context.Context, column string, id string, limit int, offset int) ([]domain.Assignment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	// column is one of two compile-time constants, never user input.
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE ` + column + ` = $1
		ORDER BY assigned_date DESC, assignment_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, id, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assignments for "+column+" "+id, err)
	}
	defer rows.Close()

	assignments := []domain.Assignment{}
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan assignment row", err)
		}
		assignments = append(assignments, *assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating assignment rows", err)
	}
	return assignments, nil
}

// UpdateAssignment updates an assignment's fields.
func (r *PgxAssignmentRepository) UpdateAssignment(ctx context.Context, assignment domain.Assignment) error {
	m := mapping.ToModelAssignment(assignment)
	query := `
		UPDATE assignments
		SET task = $2,
		    status = $3,
		    notes = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE assignment_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AssignmentID,
		m.Task,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update assignment "+m.AssignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("assignment " + m.AssignmentID + " not found for update")
	}
	return nil
}
