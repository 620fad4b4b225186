package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codebykhassan/contact-management-app/internal/model"

	"github.com/jackc/pgx/v5"
)

// ContactRepository defines operations for contact data
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, id int64) (*model.Contact, error)
	FindPage(ctx context.Context, filter model.ContactFilter) ([]model.Contact, int64, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, id int64) error
}

type contactRepository struct {
	db DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create inserts a new contact into the database
func (r *contactRepository) Create(ctx context.Context, c *model.Contact) error {
	sql := `INSERT INTO contacts (user_id, name, email, phone, photo)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, c.UserID, c.Name, c.Email, c.Phone, c.Photo).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// FindByID retrieves a contact by its ID
func (r *contactRepository) FindByID(ctx context.Context, id int64) (*model.Contact, error) {
	c := &model.Contact{}
	sql := `SELECT id, user_id, name, email, phone, photo, created_at
            FROM contacts WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Photo, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find contact by ID: %w", err)
	}
	return c, nil
}

// FindPage retrieves one page of contacts matching the filter plus the total
// matching count before pagination.
func (r *contactRepository) FindPage(ctx context.Context, filter model.ContactFilter) ([]model.Contact, int64, error) {
	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argCount))
		args = append(args, *filter.OwnerID)
		argCount++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name LIKE $%d OR email LIKE $%d)", argCount, argCount))
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Total matching count, pre-pagination
	var total int64
	countQuery := "SELECT COUNT(*) FROM contacts" + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, user_id, name, email, phone, photo, created_at FROM contacts`)
	queryBuilder.WriteString(whereClause)
	// SortBy/SortOrder come from the service's whitelist, safe to interpolate
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", filter.SortBy, filter.SortOrder))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Photo, &c.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, total, nil
}

// Update modifies an existing contact. Owner and id are never changed here.
func (r *contactRepository) Update(ctx context.Context, c *model.Contact) error {
	sql := `UPDATE contacts SET name = $1, email = $2, phone = $3, photo = $4 WHERE id = $5`
	cmdTag, err := r.db.Exec(ctx, sql, c.Name, c.Email, c.Phone, c.Photo, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contact not found for update")
	}
	return nil
}

// Delete removes a contact from the database
func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM contacts WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contact not found for deletion")
	}
	return nil
}
