package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ZerubabelSemu/dotdesign/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Repository struct {
	db *sql.DB
}

type RepoInterface interface {
	GetProducts(ctx context.Context, categorySlug string) ([]*domain.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetPrices(ctx context.Context, productIDs []string) (map[string]domain.ProductPricing, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	Close() error
	RunMigrations(string) error
}

func NewRepository(dbPath string) (*Repository, error) {
	// sqlite ships with foreign keys off; without the pragma the ON DELETE
	// CASCADE on variants and images is never enforced.
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// GetProducts returns all published products, newest first, with their
// images. An empty categorySlug (or "all") returns every category.
func (r *Repository) GetProducts(ctx context.Context, categorySlug string) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.featured, p.published,
		       COALESCE(p.category_id, ''), p.material, p.care_instructions, p.created_at
		FROM products p
	`
	var args []interface{}
	if categorySlug != "" && categorySlug != "all" {
		query += ` JOIN categories c ON c.id = p.category_id WHERE p.published = 1 AND c.slug = ?`
		args = append(args, categorySlug)
	} else {
		query += ` WHERE p.published = 1`
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetFeaturedProducts returns up to limit published, featured products.
func (r *Repository) GetFeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.featured, p.published,
		       COALESCE(p.category_id, ''), p.material, p.care_instructions, p.created_at
		FROM products p
		WHERE p.published = 1 AND p.featured = 1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?
	`
	products, err := r.queryProducts(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns one published product with its images and variants.
func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.featured, p.published,
		       COALESCE(p.category_id, ''), p.material, p.care_instructions, p.created_at
		FROM products p
		WHERE p.id = ? AND p.published = 1
	`
	products, err := r.queryProducts(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}

	product := products[0]
	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, size, color, stock, price_adjustment
		FROM product_variants
		WHERE product_id = ?
		ORDER BY size, color
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Stock, &v.PriceAdjustment); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		product.Variants = append(product.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return product, nil
}

// GetPrices is the batched lookup behind cart price reconciliation: for each
// requested product that still exists it returns the current base price and
// every variant's adjustment. Unknown ids are simply absent from the result.
func (r *Repository) GetPrices(ctx context.Context, productIDs []string) (map[string]domain.ProductPricing, error) {
	if len(productIDs) == 0 {
		return map[string]domain.ProductPricing{}, nil
	}

	placeholders, args := inArgs(productIDs)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, price FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.ProductPricing, len(productIDs))
	for rows.Next() {
		var id string
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		result[id] = domain.ProductPricing{
			BasePrice:   price,
			Adjustments: make(map[string]float64),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	vrows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, price_adjustment FROM product_variants WHERE product_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query variant adjustments: %w", err)
	}
	defer vrows.Close()

	for vrows.Next() {
		var id, productID string
		var adj float64
		if err := vrows.Scan(&id, &productID, &adj); err != nil {
			return nil, fmt.Errorf("failed to scan variant adjustment: %w", err)
		}
		if p, ok := result[productID]; ok {
			p.Adjustments[id] = adj
		}
	}
	if err := vrows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Slug)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, featured, published, category_id, material, care_instructions)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?)
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.Featured, p.Published, p.CategoryID, p.Material, p.CareInstructions)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	for i := range p.Variants {
		if p.Variants[i].ID == "" {
			p.Variants[i].ID = uuid.New().String()
		}
		p.Variants[i].ProductID = p.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_variants (id, product_id, size, color, stock, price_adjustment)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.Variants[i].ID, p.ID, p.Variants[i].Size, p.Variants[i].Color, p.Variants[i].Stock, p.Variants[i].PriceAdjustment)
		if err != nil {
			return fmt.Errorf("failed to insert variant: %w", err)
		}
	}

	for i := range p.Images {
		if p.Images[i].ID == "" {
			p.Images[i].ID = uuid.New().String()
		}
		p.Images[i].ProductID = p.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_images (id, product_id, image_url, alt_text, display_order)
			VALUES (?, ?, ?, ?, ?)
		`, p.Images[i].ID, p.ID, p.Images[i].ImageURL, p.Images[i].AltText, p.Images[i].DisplayOrder)
		if err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// UpdateProduct overwrites the product row itself; variants and images are
// managed through CreateProduct or directly, not diffed here.
func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, featured = ?, published = ?,
		    category_id = NULLIF(?, ''), material = ?, care_instructions = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.Stock, p.Featured, p.Published, p.CategoryID, p.Material, p.CareInstructions, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Stock,
			&p.Featured,
			&p.Published,
			&p.CategoryID,
			&p.Material,
			&p.CareInstructions,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func (r *Repository) attachImages(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	byID := make(map[string]*domain.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}
	placeholders, args := inArgs(ids)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, image_url, alt_text, display_order
		FROM product_images
		WHERE product_id IN (`+placeholders+`)
		ORDER BY display_order
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.AltText, &img.DisplayOrder); err != nil {
			return fmt.Errorf("failed to scan image: %w", err)
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}

func inArgs(ids []string) (string, []interface{}) {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}
