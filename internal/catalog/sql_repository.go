package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLRepository reads products from a SQLite database.
type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(dbPath string) (*SQLRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// :memory: databases live per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &SQLRepository{db: db}, nil
}

func (r *SQLRepository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return errors.Wrap(err, "could not create migration driver")
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return errors.Wrap(err, "could not create migrate instance")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not run migrations")
	}

	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, price
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price); err != nil {
			return nil, errors.Wrap(err, "failed to scan product")
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return products, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	query := `
		SELECT id, name, category, price
		FROM products
		WHERE id = ?
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Category, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, errors.Wrapf(domain.ErrNotFound, "product %d", id)
	}
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "failed to query product")
	}
	return p, nil
}

func (r *SQLRepository) Close() error {
	return r.db.Close()
}
