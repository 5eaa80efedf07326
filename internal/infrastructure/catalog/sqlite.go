package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/macrolens/mealscore/internal/domain"
)

// SQLiteStore persists a catalog document in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and creates the catalog tables if
// they do not exist. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// an in-memory database lives only as long as its single connection
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS foods (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        name_ar TEXT NOT NULL DEFAULT '',
        portion_grams REAL NOT NULL CHECK (portion_grams > 0),
        energy REAL NOT NULL,
        protein REAL NOT NULL,
        carbohydrate REAL NOT NULL,
        fat REAL NOT NULL,
        fiber REAL NOT NULL,
        iron REAL NOT NULL,
        calcium REAL NOT NULL,
        zinc REAL NOT NULL,
        iodine REAL NOT NULL,
        vitamin_a REAL NOT NULL,
        vitamin_d REAL NOT NULL,
        vitamin_c REAL NOT NULL,
        vitamin_b12 REAL NOT NULL,
        folate REAL NOT NULL,
        category TEXT NOT NULL,
        cost_tier TEXT NOT NULL,
        processing_level INTEGER NOT NULL CHECK (processing_level BETWEEN 1 AND 4)
    );

    CREATE TABLE IF NOT EXISTS age_group_references (
        age_group TEXT PRIMARY KEY,
        energy_min REAL NOT NULL,
        energy_max REAL NOT NULL,
        protein REAL NOT NULL,
        fiber REAL NOT NULL,
        iron REAL NOT NULL,
        calcium REAL NOT NULL,
        zinc REAL NOT NULL,
        iodine REAL NOT NULL,
        vitamin_a REAL NOT NULL,
        vitamin_d REAL NOT NULL,
        vitamin_c REAL NOT NULL,
        vitamin_b12 REAL NOT NULL,
        folate REAL NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_foods_processing_level ON foods(processing_level);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// IsEmpty reports whether the foods table has no rows
func (s *SQLiteStore) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count foods: %w", err)
	}
	return n == 0, nil
}

// Seed replaces the stored catalog with doc in a single transaction. The
// document is validated first so a bad seed never reaches the database.
func (s *SQLiteStore) Seed(ctx context.Context, doc Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM age_group_references`); err != nil {
		return fmt.Errorf("failed to clear references: %w", err)
	}

	foodQuery := `INSERT INTO foods (` + foodColumns + `) VALUES (` + placeholders(foodColumnCount, false) + `)`
	for _, food := range doc.Foods {
		if _, err := tx.ExecContext(ctx, foodQuery, foodArgs(food)...); err != nil {
			return fmt.Errorf("failed to insert food %s: %w", food.ID, err)
		}
	}

	refQuery := `INSERT INTO age_group_references (` + referenceColumns + `) VALUES (` + placeholders(referenceColumnCount, false) + `)`
	for _, ref := range doc.References {
		if _, err := tx.ExecContext(ctx, refQuery, referenceArgs(ref)...); err != nil {
			return fmt.Errorf("failed to insert reference %s: %w", ref.AgeGroup, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	log.Printf("[CATALOG] Seeded SQLite with %d foods and %d references", len(doc.Foods), len(doc.References))
	return nil
}

// Load reads the stored document and builds a validated catalog from it
func (s *SQLiteStore) Load(ctx context.Context) (*Catalog, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// Document reads every stored food and reference
func (s *SQLiteStore) Document(ctx context.Context) (Document, error) {
	foods, err := s.foods(ctx)
	if err != nil {
		return Document{}, err
	}
	refs, err := s.references(ctx)
	if err != nil {
		return Document{}, err
	}
	return Document{Foods: foods, References: refs}, nil
}

func (s *SQLiteStore) foods(ctx context.Context) ([]domain.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+foodColumns+` FROM foods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var foods []domain.FoodEntry
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read foods: %w", err)
	}
	return foods, nil
}

func (s *SQLiteStore) references(ctx context.Context) ([]domain.AgeGroupReference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+referenceColumns+` FROM age_group_references`)
	if err != nil {
		return nil, fmt.Errorf("failed to query references: %w", err)
	}
	defer rows.Close()

	var refs []domain.AgeGroupReference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read references: %w", err)
	}
	return refs, nil
}
