package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"budgettool/budget"
)

//go:embed migrations/*.sql
var migrations embed.FS

const defaultQueryTimeout = 5 * time.Second

// Postgres stores budgets in a jsonb column, one row per budget.
type Postgres struct {
	pool    *pgxpool.Pool
	log     *slog.Logger
	timeout time.Duration
}

// OpenPostgres connects to dsn and applies pending migrations.
func OpenPostgres(ctx context.Context, dsn string, log *slog.Logger) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := migrate(pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info("postgres migrations applied")

	return &Postgres{pool: pool, log: log, timeout: defaultQueryTimeout}, nil
}

func migrate(pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close() // releases the adapter only; the pool stays open
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (g *Postgres) Close() {
	g.pool.Close()
}

func (g *Postgres) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), g.timeout)
}

func (g *Postgres) Create(doc budget.Document, actorID string) (string, error) {
	if actorID == "" {
		return "", ErrMissingActor
	}
	doc, raw, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}

	ctx, cancel := g.ctx()
	defer cancel()

	id := uuid.NewString()
	_, err = g.pool.Exec(ctx, `
		INSERT INTO budgets (id, name, client, date, document, formula_version, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, id, doc.Metadata.Name, doc.Metadata.Client, doc.Metadata.Date, string(raw), budget.FormulaVersion, actorID)
	if err != nil {
		return "", fmt.Errorf("insert budget: %w", err)
	}
	return id, nil
}

func (g *Postgres) Read(id string) (*StoredBudget, error) {
	ctx, cancel := g.ctx()
	defer cancel()

	row := g.pool.QueryRow(ctx, `
		SELECT id, document, formula_version, created_by, updated_by, created_at, updated_at
		FROM budgets WHERE id = $1
	`, id)

	stored, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read budget %s: %w", id, err)
	}
	return &stored, nil
}

func (g *Postgres) Update(id string, doc budget.Document, actorID string) error {
	if actorID == "" {
		return ErrMissingActor
	}
	doc, raw, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	ctx, cancel := g.ctx()
	defer cancel()

	tag, err := g.pool.Exec(ctx, `
		UPDATE budgets
		SET name = $2, client = $3, date = $4, document = $5, formula_version = $6,
		    updated_by = $7, updated_at = now()
		WHERE id = $1
	`, id, doc.Metadata.Name, doc.Metadata.Client, doc.Metadata.Date, string(raw), budget.FormulaVersion, actorID)
	if err != nil {
		return fmt.Errorf("update budget %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Postgres) Delete(id string) error {
	ctx, cancel := g.ctx()
	defer cancel()

	tag, err := g.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Postgres) List() ([]StoredBudget, error) {
	ctx, cancel := g.ctx()
	defer cancel()

	rows, err := g.pool.Query(ctx, `
		SELECT id, document, formula_version, created_by, updated_by, created_at, updated_at
		FROM budgets ORDER BY date DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	list := []StoredBudget{}
	for rows.Next() {
		stored, err := scanBudget(rows)
		if err != nil {
			g.log.Warn("skipping unreadable budget", "error", err)
			continue
		}
		list = append(list, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	// date is denormalized, so re-sort on the normalized value.
	sortByDate(list)
	return list, nil
}

func scanBudget(row pgx.Row) (StoredBudget, error) {
	var (
		s   StoredBudget
		raw []byte
	)
	if err := row.Scan(&s.ID, &raw, &s.FormulaVersion, &s.CreatedBy, &s.UpdatedBy, &s.Created, &s.Updated); err != nil {
		return StoredBudget{}, err
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return StoredBudget{}, err
	}
	s.Document = doc
	return s, nil
}
