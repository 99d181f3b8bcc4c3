package category

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, cat Category) error {
	const q = `
	INSERT INTO categories
		(category_id, name, description, image_url, created_at, updated_at)
	VALUES
		(:category_id, :name, :description, :image_url, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, cat); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Category, error) {
	const q = `SELECT * FROM categories WHERE category_id = $1`

	var cat Category
	if err := sqlx.GetContext(ctx, db, &cat, q, id); err != nil {
		return Category{}, fmt.Errorf("selecting category[%s]: %w", id, err)
	}

	return cat, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Category, error) {
	const q = `SELECT * FROM categories ORDER BY name`

	cats := []Category{}
	if err := sqlx.SelectContext(ctx, db, &cats, q); err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}

	return cats, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, cat Category) error {
	const q = `
	UPDATE categories SET
		name = :name,
		description = :description,
		image_url = :image_url,
		updated_at = :updated_at
	WHERE category_id = :category_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, cat); err != nil {
		return fmt.Errorf("updating category[%s]: %w", cat.ID, err)
	}

	return nil
}

// Delete removes the category; its products go with it via the foreign
// key cascade.
func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM categories WHERE category_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting category[%s]: %w", id, err)
	}

	return nil
}
