// Package postgres implements the contact store on a PostgreSQL table.
//
// Expected schema:
//
//	CREATE TABLE contacts (
//	    id       BIGSERIAL PRIMARY KEY,
//	    name     TEXT NOT NULL,
//	    phone    TEXT NOT NULL UNIQUE,
//	    country  TEXT NOT NULL,
//	    timezone TEXT NOT NULL
//	);
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/V4T54L/contact-hub/internal/domain"
)

const uniqueViolation = "23505"

// ContactRepository implements domain.ContactRepository using PostgreSQL.
// The UNIQUE constraint on phone surfaces racing duplicate inserts as
// KindConflict.
type ContactRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewContactRepository creates a new PostgreSQL-backed contact repository.
func NewContactRepository(db *sql.DB, logger *slog.Logger) *ContactRepository {
	return &ContactRepository{
		db:     db,
		logger: logger.With("component", "postgres_repository"),
	}
}

// All returns every stored contact.
func (r *ContactRepository) All(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, country, timezone FROM contacts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var (
			c  domain.Contact
			id int64
		)
		if err := rows.Scan(&id, &c.Name, &c.Phone, &c.Country, &c.Timezone); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		c.ID = strconv.FormatInt(id, 10)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact rows: %w", err)
	}
	return contacts, nil
}

// FindByID returns the contact with the given identifier. Non-numeric
// identifiers cannot match any row and report not found.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}

	var c domain.Contact
	err = r.db.QueryRowContext(ctx,
		`SELECT name, phone, country, timezone FROM contacts WHERE id = $1`, numID,
	).Scan(&c.Name, &c.Phone, &c.Country, &c.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact %s: %w", id, err)
	}
	c.ID = id
	return &c, nil
}

// FindByPhone returns the contact holding the given phone, or (nil, nil).
func (r *ContactRepository) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	var (
		c  domain.Contact
		id int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, country, timezone FROM contacts WHERE phone = $1`, phone,
	).Scan(&id, &c.Name, &c.Phone, &c.Country, &c.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact by phone: %w", err)
	}
	c.ID = strconv.FormatInt(id, 10)
	return &c, nil
}

// Insert stores a new contact and returns the database-assigned identifier.
func (r *ContactRepository) Insert(ctx context.Context, c domain.Contact) (string, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (name, phone, country, timezone) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.Name, c.Phone, c.Country, c.Timezone,
	).Scan(&id)
	if isUniqueViolation(err) {
		return "", domain.E(domain.KindConflict, "phone %s is already associated to a contact", c.Phone)
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert contact: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// Update applies the non-nil fields of upd and returns the updated row.
func (r *ContactRepository) Update(ctx context.Context, id string, upd domain.ContactUpdate) (*domain.Contact, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}

	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value string) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Country != nil {
		add("country", *upd.Country)
	}
	if upd.Timezone != nil {
		add("timezone", *upd.Timezone)
	}
	args = append(args, numID)

	query := fmt.Sprintf(
		`UPDATE contacts SET %s WHERE id = $%d RETURNING name, phone, country, timezone`,
		strings.Join(sets, ", "), len(args),
	)

	var c domain.Contact
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.Name, &c.Phone, &c.Country, &c.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}
	if isUniqueViolation(err) {
		return nil, domain.E(domain.KindConflict, "phone is already associated to a contact")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact %s: %w", id, err)
	}
	c.ID = id
	return &c, nil
}

// Delete removes the contact with the given identifier and reports whether
// exactly one row was removed.
func (r *ContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, numID)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return count == 1, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
