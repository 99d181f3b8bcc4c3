package contact

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, c Contact) error {
	const q = `
	INSERT INTO contacts
		(contact_id, name, email, phone, message, read, created_at)
	VALUES
		(:contact_id, :name, :email, :phone, :message, :read, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Contact, error) {
	const q = `SELECT * FROM contacts WHERE contact_id = $1`

	var c Contact
	if err := sqlx.GetContext(ctx, db, &c, q, id); err != nil {
		return Contact{}, fmt.Errorf("selecting contact[%s]: %w", id, err)
	}

	return c, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Contact, error) {
	const q = `SELECT * FROM contacts ORDER BY created_at DESC`

	cs := []Contact{}
	if err := sqlx.SelectContext(ctx, db, &cs, q); err != nil {
		return nil, fmt.Errorf("selecting contacts: %w", err)
	}

	return cs, nil
}

func MarkRead(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `UPDATE contacts SET read = TRUE WHERE contact_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("marking contact[%s] read: %w", id, err)
	}

	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM contacts WHERE contact_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting contact[%s]: %w", id, err)
	}

	return nil
}
