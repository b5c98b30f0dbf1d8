package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
)

func (r *Repository) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price, scent_type, image_url, image_alt, longevity, featured, created_at, updated_at
		FROM products
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	byID := map[int64]*domain.Product{}
	for rows.Next() {
		p := &domain.Product{}
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ScentType,
			&p.ImageURL,
			&p.ImageAlt,
			&p.Longevity,
			&p.Featured,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
		byID[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if err := r.loadChildren(ctx, byID); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, scent_type, image_url, image_alt, longevity, featured, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ScentType,
		&p.ImageURL,
		&p.ImageAlt,
		&p.Longevity,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	if err := r.loadChildren(ctx, map[int64]*domain.Product{p.ID: p}); err != nil {
		return nil, err
	}

	return p, nil
}

// loadChildren stitches sizes, scent notes and occasions onto the given
// products with one query per child table.
func (r *Repository) loadChildren(ctx context.Context, byID map[int64]*domain.Product) error {
	if len(byID) == 0 {
		return nil
	}

	sizeRows, err := r.db.QueryContext(ctx, `SELECT product_id, volume_ml, price FROM product_sizes ORDER BY volume_ml`)
	if err != nil {
		return fmt.Errorf("failed to query product sizes: %w", err)
	}
	defer sizeRows.Close()
	for sizeRows.Next() {
		var productID int64
		var size domain.ProductSize
		if err := sizeRows.Scan(&productID, &size.VolumeML, &size.Price); err != nil {
			return fmt.Errorf("failed to scan product size: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Sizes = append(p.Sizes, size)
		}
	}
	if err := sizeRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	noteRows, err := r.db.QueryContext(ctx, `SELECT product_id, note_type, note_name FROM scent_notes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to query scent notes: %w", err)
	}
	defer noteRows.Close()
	for noteRows.Next() {
		var productID int64
		var note domain.ScentNote
		if err := noteRows.Scan(&productID, &note.NoteType, &note.NoteName); err != nil {
			return fmt.Errorf("failed to scan scent note: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.ScentNotes = append(p.ScentNotes, note)
		}
	}
	if err := noteRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	occasionRows, err := r.db.QueryContext(ctx, `SELECT product_id, occasion FROM product_occasions ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to query product occasions: %w", err)
	}
	defer occasionRows.Close()
	for occasionRows.Next() {
		var productID int64
		var occasion string
		if err := occasionRows.Scan(&productID, &occasion); err != nil {
			return fmt.Errorf("failed to scan product occasion: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Occasions = append(p.Occasions, occasion)
		}
	}
	if err := occasionRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	return nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO products (name, description, price, scent_type, image_url, image_alt, longevity, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.Name, p.Description, p.Price, p.ScentType, p.ImageURL, p.ImageAlt, p.Longevity, p.Featured)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get product id: %w", err)
	}

	if err := insertChildren(ctx, tx, id, p); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit product: %w", err)
	}
	return id, nil
}

// UpdateProduct replaces the product row and all its child rows
// wholesale, in one transaction. The admin form always submits the full
// set of sizes, notes and occasions.
func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, scent_type = $4, image_url = $5,
		    image_alt = $6, longevity = $7, featured = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $9`,
		p.Name, p.Description, p.Price, p.ScentType, p.ImageURL, p.ImageAlt, p.Longevity, p.Featured, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	for _, table := range []string{"product_sizes", "scent_notes", "product_occasions"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE product_id = $1", table), p.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertChildren(ctx, tx, p.ID, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product update: %w", err)
	}
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, id int64, p *domain.Product) error {
	for _, size := range p.Sizes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_sizes (product_id, volume_ml, price) VALUES ($1, $2, $3)`,
			id, size.VolumeML, size.Price); err != nil {
			return fmt.Errorf("failed to insert product size: %w", err)
		}
	}
	for _, note := range p.ScentNotes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scent_notes (product_id, note_type, note_name) VALUES ($1, $2, $3)`,
			id, note.NoteType, note.NoteName); err != nil {
			return fmt.Errorf("failed to insert scent note: %w", err)
		}
	}
	for _, occasion := range p.Occasions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_occasions (product_id, occasion) VALUES ($1, $2)`,
			id, occasion); err != nil {
			return fmt.Errorf("failed to insert product occasion: %w", err)
		}
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Child rows go first; sqlite only cascades with foreign_keys=ON.
	for _, table := range []string{"product_sizes", "scent_notes", "product_occasions"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE product_id = $1", table), id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product delete: %w", err)
	}
	return nil
}
