package store

import (
	"context"
	"database/sql"

	"itorg-api/internal/models"
)

const projectColumns = `id, name, description, status, created_at, updated_at`

// ListProjects returns every project ordered by id.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.withTx(ctx, "list projects", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanProject(rows)
			if err != nil {
				return err
			}
			projects = append(projects, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject inserts a project and returns the row as stored.
func (s *Store) CreateProject(ctx context.Context, in models.ProjectFields) (models.Project, error) {
	var out models.Project
	now := s.now()
	err := s.withTx(ctx, "create project", func(tx *sql.Tx) error {
		var err error
		out, err = scanProject(tx.QueryRowContext(ctx, `
			INSERT INTO projects (name, description, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+projectColumns,
			in.Name, in.Description, in.Status, now, now))
		return err
	})
	return out, err
}

// UpdateProject overwrites every mutable field of the project and bumps
// updated_at. created_at is never touched.
func (s *Store) UpdateProject(ctx context.Context, id int64, in models.ProjectFields) (models.Project, error) {
	var out models.Project
	err := s.withTx(ctx, "update project", func(tx *sql.Tx) error {
		var err error
		out, err = scanProject(tx.QueryRowContext(ctx, `
			UPDATE projects
			SET name = $1, description = $2, status = $3, updated_at = $4
			WHERE id = $5
			RETURNING `+projectColumns,
			in.Name, in.Description, in.Status, s.now(), id))
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	})
	return out, err
}

// DeleteProject removes the project permanently.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	return s.withTx(ctx, "delete project", func(tx *sql.Tx) error {
		return deleteByID(ctx, tx, "projects", id)
	})
}

func scanProject(row scanner) (models.Project, error) {
	var p models.Project
	var desc sql.NullString
	err := row.Scan(&p.ID, &p.Name, &desc, &p.Status, timestamp{&p.CreatedAt}, timestamp{&p.UpdatedAt})
	p.Description = desc.String
	return p, err
}

// deleteByID is shared by the three resources; table is never user input.
func deleteByID(ctx context.Context, tx *sql.Tx, table string, id int64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
