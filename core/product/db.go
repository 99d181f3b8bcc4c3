package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientStock reports a stock decrement that would leave a
// variant below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

func Create(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	INSERT INTO products
		(product_id, category_id, name, description, image_url, base_price, created_at, updated_at, version)
	VALUES
		(:product_id, :category_id, :name, :description, :image_url, :base_price, :created_at, :updated_at, 1)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func CreateVariant(ctx context.Context, db sqlx.ExtContext, v Variant) error {
	const q = `
	INSERT INTO product_variants
		(variant_id, product_id, name, price, stock, nutrition_info, created_at, updated_at)
	VALUES
		(:variant_id, :product_id, :name, :price, :stock, :nutrition_info, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, v); err != nil {
		return fmt.Errorf("inserting variant: %w", err)
	}

	return nil
}

func CreateImage(ctx context.Context, db sqlx.ExtContext, img Image) error {
	const q = `
	INSERT INTO product_images
		(image_id, product_id, url, position, created_at)
	VALUES
		(:image_id, :product_id, :url, :position, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, img); err != nil {
		return fmt.Errorf("inserting image: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var prd Product
	if err := sqlx.GetContext(ctx, db, &prd, q, id); err != nil {
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}

	return prd, nil
}

func FetchVariant(ctx context.Context, db sqlx.ExtContext, productID string, variantID string) (Variant, error) {
	const q = `SELECT * FROM product_variants WHERE variant_id = $1 AND product_id = $2`

	var v Variant
	if err := sqlx.GetContext(ctx, db, &v, q, variantID, productID); err != nil {
		return Variant{}, fmt.Errorf("selecting variant[%s] of product[%s]: %w", variantID, productID, err)
	}

	return v, nil
}

func FetchVariants(ctx context.Context, db sqlx.ExtContext, productID string) ([]Variant, error) {
	const q = `SELECT * FROM product_variants WHERE product_id = $1 ORDER BY price`

	vs := []Variant{}
	if err := sqlx.SelectContext(ctx, db, &vs, q, productID); err != nil {
		return nil, fmt.Errorf("selecting variants of product[%s]: %w", productID, err)
	}

	return vs, nil
}

func FetchImages(ctx context.Context, db sqlx.ExtContext, productID string) ([]Image, error) {
	const q = `SELECT * FROM product_images WHERE product_id = $1 ORDER BY position`

	imgs := []Image{}
	if err := sqlx.SelectContext(ctx, db, &imgs, q, productID); err != nil {
		return nil, fmt.Errorf("selecting images of product[%s]: %w", productID, err)
	}

	return imgs, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `SELECT * FROM products ORDER BY name`

	prds := []Product{}
	if err := sqlx.SelectContext(ctx, db, &prds, q); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	return prds, nil
}

func ListByCategory(ctx context.Context, db sqlx.ExtContext, categoryID string) ([]Product, error) {
	const q = `SELECT * FROM products WHERE category_id = $1 ORDER BY name`

	prds := []Product{}
	if err := sqlx.SelectContext(ctx, db, &prds, q, categoryID); err != nil {
		return nil, fmt.Errorf("selecting products of category[%s]: %w", categoryID, err)
	}

	return prds, nil
}

func ListVariants(ctx context.Context, db sqlx.ExtContext) ([]Variant, error) {
	const q = `SELECT * FROM product_variants ORDER BY price`

	vs := []Variant{}
	if err := sqlx.SelectContext(ctx, db, &vs, q); err != nil {
		return nil, fmt.Errorf("selecting variants: %w", err)
	}

	return vs, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	UPDATE products SET
		category_id = :category_id,
		name = :name,
		description = :description,
		image_url = :image_url,
		base_price = :base_price,
		updated_at = :updated_at,
		version = version + 1
	WHERE product_id = :product_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("updating product[%s]: %w", prd.ID, err)
	}

	return nil
}

func UpdateVariant(ctx context.Context, db sqlx.ExtContext, v Variant) error {
	const q = `
	UPDATE product_variants SET
		name = :name,
		price = :price,
		stock = :stock,
		nutrition_info = :nutrition_info,
		updated_at = :updated_at
	WHERE variant_id = :variant_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, v); err != nil {
		return fmt.Errorf("updating variant[%s]: %w", v.ID, err)
	}

	return nil
}

// DecrementStock takes qty units off a variant's stock. The guard in
// the WHERE clause makes oversells impossible even under concurrent
// checkouts.
func DecrementStock(ctx context.Context, db sqlx.ExtContext, variantID string, qty int) error {
	const q = `
	UPDATE product_variants SET
		stock = stock - $2
	WHERE variant_id = $1 AND stock >= $2`

	res, err := db.ExecContext(ctx, q, variantID, qty)
	if err != nil {
		return fmt.Errorf("decrementing stock of variant[%s]: %w", variantID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking stock decrement of variant[%s]: %w", variantID, err)
	}
	if n == 0 {
		return ErrInsufficientStock
	}

	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM products WHERE product_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting product[%s]: %w", id, err)
	}

	return nil
}

func DeleteImage(ctx context.Context, db sqlx.ExtContext, productID string, imageID string) error {
	const q = `DELETE FROM product_images WHERE image_id = $1 AND product_id = $2`

	if _, err := db.ExecContext(ctx, q, imageID, productID); err != nil {
		return fmt.Errorf("deleting image[%s] of product[%s]: %w", imageID, productID, err)
	}

	return nil
}
