package store

import (
	"context"
	"database/sql"

	"itorg-api/internal/models"
)

const assetColumns = `id, type, make_model, serial, assigned_to, status, created_at, updated_at`

const insertAsset = `
	INSERT INTO assets (type, make_model, serial, assigned_to, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + assetColumns

// ListAssets returns every asset ordered by id.
func (s *Store) ListAssets(ctx context.Context) ([]models.Asset, error) {
	assets := []models.Asset{}
	err := s.withTx(ctx, "list assets", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanAsset(rows)
			if err != nil {
				return err
			}
			assets = append(assets, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *Store) CreateAsset(ctx context.Context, in models.AssetFields) (models.Asset, error) {
	var out models.Asset
	now := s.now()
	err := s.withTx(ctx, "create asset", func(tx *sql.Tx) error {
		var err error
		out, err = scanAsset(tx.QueryRowContext(ctx, insertAsset,
			in.Type, in.MakeModel, in.Serial, in.AssignedTo, in.Status, now, now))
		return err
	})
	return out, err
}

// CreateAssets inserts a batch in one transaction: either every asset is
// stored or none is.
func (s *Store) CreateAssets(ctx context.Context, batch []models.AssetFields) ([]models.Asset, error) {
	out := make([]models.Asset, 0, len(batch))
	now := s.now()
	err := s.withTx(ctx, "create assets", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertAsset)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, in := range batch {
			a, err := scanAsset(stmt.QueryRowContext(ctx,
				in.Type, in.MakeModel, in.Serial, in.AssignedTo, in.Status, now, now))
			if err != nil {
				return err
			}
			out = append(out, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateAsset(ctx context.Context, id int64, in models.AssetFields) (models.Asset, error) {
	var out models.Asset
	err := s.withTx(ctx, "update asset", func(tx *sql.Tx) error {
		var err error
		out, err = scanAsset(tx.QueryRowContext(ctx, `
			UPDATE assets
			SET type = $1, make_model = $2, serial = $3, assigned_to = $4, status = $5, updated_at = $6
			WHERE id = $7
			RETURNING `+assetColumns,
			in.Type, in.MakeModel, in.Serial, in.AssignedTo, in.Status, s.now(), id))
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	})
	return out, err
}

func (s *Store) DeleteAsset(ctx context.Context, id int64) error {
	return s.withTx(ctx, "delete asset", func(tx *sql.Tx) error {
		return deleteByID(ctx, tx, "assets", id)
	})
}

func scanAsset(row scanner) (models.Asset, error) {
	var a models.Asset
	var makeModel, serial, assignedTo sql.NullString
	err := row.Scan(&a.ID, &a.Type, &makeModel, &serial, &assignedTo, &a.Status, timestamp{&a.CreatedAt}, timestamp{&a.UpdatedAt})
	a.MakeModel = makeModel.String
	a.Serial = serial.String
	a.AssignedTo = assignedTo.String
	return a, err
}
