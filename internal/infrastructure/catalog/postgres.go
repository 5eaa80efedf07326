package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macrolens/mealscore/internal/domain"
)

// PostgresStore persists a catalog document in PostgreSQL
type PostgresStore struct {
	db *pgxpool.Pool
}

// ConnectPostgres opens a pool for dsn, verifies the connection and creates
// the catalog tables if they do not exist
func ConnectPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid postgres dsn: %v", domain.ErrConfiguration, err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Println("[CATALOG] Connected to PostgreSQL")
	return store, nil
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	foodsSQL := `
		CREATE TABLE IF NOT EXISTS foods (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			name_ar VARCHAR(255) NOT NULL DEFAULT '',
			portion_grams DOUBLE PRECISION NOT NULL CHECK (portion_grams > 0),
			energy DOUBLE PRECISION NOT NULL,
			protein DOUBLE PRECISION NOT NULL,
			carbohydrate DOUBLE PRECISION NOT NULL,
			fat DOUBLE PRECISION NOT NULL,
			fiber DOUBLE PRECISION NOT NULL,
			iron DOUBLE PRECISION NOT NULL,
			calcium DOUBLE PRECISION NOT NULL,
			zinc DOUBLE PRECISION NOT NULL,
			iodine DOUBLE PRECISION NOT NULL,
			vitamin_a DOUBLE PRECISION NOT NULL,
			vitamin_d DOUBLE PRECISION NOT NULL,
			vitamin_c DOUBLE PRECISION NOT NULL,
			vitamin_b12 DOUBLE PRECISION NOT NULL,
			folate DOUBLE PRECISION NOT NULL,
			category VARCHAR(32) NOT NULL,
			cost_tier VARCHAR(32) NOT NULL,
			processing_level INTEGER NOT NULL CHECK (processing_level BETWEEN 1 AND 4)
		)
	`
	if _, err := s.db.Exec(ctx, foodsSQL); err != nil {
		return err
	}

	referencesSQL := `
		CREATE TABLE IF NOT EXISTS age_group_references (
			age_group VARCHAR(32) PRIMARY KEY,
			energy_min DOUBLE PRECISION NOT NULL,
			energy_max DOUBLE PRECISION NOT NULL,
			protein DOUBLE PRECISION NOT NULL,
			fiber DOUBLE PRECISION NOT NULL,
			iron DOUBLE PRECISION NOT NULL,
			calcium DOUBLE PRECISION NOT NULL,
			zinc DOUBLE PRECISION NOT NULL,
			iodine DOUBLE PRECISION NOT NULL,
			vitamin_a DOUBLE PRECISION NOT NULL,
			vitamin_d DOUBLE PRECISION NOT NULL,
			vitamin_c DOUBLE PRECISION NOT NULL,
			vitamin_b12 DOUBLE PRECISION NOT NULL,
			folate DOUBLE PRECISION NOT NULL
		)
	`
	if _, err := s.db.Exec(ctx, referencesSQL); err != nil {
		return err
	}

	return nil
}

// IsEmpty reports whether the foods table has no rows
func (s *PostgresStore) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count foods: %w", err)
	}
	return n == 0, nil
}

// Seed replaces the stored catalog with doc in a single transaction
func (s *PostgresStore) Seed(ctx context.Context, doc Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE foods, age_group_references`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	batch := &pgx.Batch{}
	foodQuery := `INSERT INTO foods (` + foodColumns + `) VALUES (` + placeholders(foodColumnCount, true) + `)`
	for _, food := range doc.Foods {
		batch.Queue(foodQuery, foodArgs(food)...)
	}
	refQuery := `INSERT INTO age_group_references (` + referenceColumns + `) VALUES (` + placeholders(referenceColumnCount, true) + `)`
	for _, ref := range doc.References {
		batch.Queue(refQuery, referenceArgs(ref)...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert catalog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	log.Printf("[CATALOG] Seeded PostgreSQL with %d foods and %d references", len(doc.Foods), len(doc.References))
	return nil
}

// Load reads the stored document and builds a validated catalog from it
func (s *PostgresStore) Load(ctx context.Context) (*Catalog, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// Document reads every stored food and reference
func (s *PostgresStore) Document(ctx context.Context) (Document, error) {
	rows, err := s.db.Query(ctx, `SELECT `+foodColumns+` FROM foods ORDER BY id`)
	if err != nil {
		return Document{}, fmt.Errorf("failed to query foods: %w", err)
	}
	foods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FoodEntry, error) {
		return scanFood(row)
	})
	if err != nil {
		return Document{}, fmt.Errorf("failed to read foods: %w", err)
	}

	rows, err = s.db.Query(ctx, `SELECT `+referenceColumns+` FROM age_group_references`)
	if err != nil {
		return Document{}, fmt.Errorf("failed to query references: %w", err)
	}
	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AgeGroupReference, error) {
		return scanReference(row)
	})
	if err != nil {
		return Document{}, fmt.Errorf("failed to read references: %w", err)
	}

	return Document{Foods: foods, References: refs}, nil
}
