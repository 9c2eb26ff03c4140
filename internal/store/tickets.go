package store

import (
	"context"
	"database/sql"

	"itorg-api/internal/models"
)

const ticketColumns = `id, title, description, priority, status, requester_email, created_at, updated_at`

// ListTickets returns every ticket ordered by id.
func (s *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	err := s.withTx(ctx, "list tickets", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTicket(rows)
			if err != nil {
				return err
			}
			tickets = append(tickets, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *Store) CreateTicket(ctx context.Context, in models.TicketFields) (models.Ticket, error) {
	var out models.Ticket
	now := s.now()
	err := s.withTx(ctx, "create ticket", func(tx *sql.Tx) error {
		var err error
		out, err = scanTicket(tx.QueryRowContext(ctx, `
			INSERT INTO tickets (title, description, priority, status, requester_email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+ticketColumns,
			in.Title, in.Description, in.Priority, in.Status, in.RequesterEmail, now, now))
		return err
	})
	return out, err
}

func (s *Store) UpdateTicket(ctx context.Context, id int64, in models.TicketFields) (models.Ticket, error) {
	var out models.Ticket
	err := s.withTx(ctx, "update ticket", func(tx *sql.Tx) error {
		var err error
		out, err = scanTicket(tx.QueryRowContext(ctx, `
			UPDATE tickets
			SET title = $1, description = $2, priority = $3, status = $4, requester_email = $5, updated_at = $6
			WHERE id = $7
			RETURNING `+ticketColumns,
			in.Title, in.Description, in.Priority, in.Status, in.RequesterEmail, s.now(), id))
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	})
	return out, err
}

func (s *Store) DeleteTicket(ctx context.Context, id int64) error {
	return s.withTx(ctx, "delete ticket", func(tx *sql.Tx) error {
		return deleteByID(ctx, tx, "tickets", id)
	})
}

func scanTicket(row scanner) (models.Ticket, error) {
	var t models.Ticket
	var desc, email sql.NullString
	err := row.Scan(&t.ID, &t.Title, &desc, &t.Priority, &t.Status, &email, timestamp{&t.CreatedAt}, timestamp{&t.UpdatedAt})
	t.Description = desc.String
	t.RequesterEmail = email.String
	return t, err
}
