package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

type Postgres struct {
	db *sql.DB
}

var _ SuggestionRepository = (*Postgres)(nil)

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS price_suggestions (
			id           BIGSERIAL PRIMARY KEY,
			created_at   TIMESTAMPTZ NOT NULL,
			title        TEXT NOT NULL,
			brand        TEXT NOT NULL,
			age_months   INTEGER NOT NULL,
			asking_price DOUBLE PRECISION NOT NULL,
			min_price    INTEGER NOT NULL,
			max_price    INTEGER NOT NULL,
			reason       TEXT NOT NULL,
			llm_provider TEXT NOT NULL DEFAULT '',
			llm_model    TEXT NOT NULL DEFAULT ''
		)
	`

	_, err := p.db.ExecContext(ctx, query)
	return err
}

func (p *Postgres) Save(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO price_suggestions
			(created_at, title, brand, age_months, asking_price, min_price, max_price, reason, llm_provider, llm_model)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := p.db.ExecContext(ctx, query,
		rec.Time,
		rec.Title,
		rec.Brand,
		rec.AgeMonths,
		rec.AskingPrice,
		rec.Min,
		rec.Max,
		rec.Reason,
		rec.LLMProvider,
		rec.LLMModel,
	)

	return err
}

func (p *Postgres) FindRecent(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT created_at, title, brand, age_months, asking_price, min_price, max_price, reason, llm_provider, llm_model
		FROM price_suggestions ORDER BY created_at DESC, id DESC LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.Time,
			&rec.Title,
			&rec.Brand,
			&rec.AgeMonths,
			&rec.AskingPrice,
			&rec.Min,
			&rec.Max,
			&rec.Reason,
			&rec.LLMProvider,
			&rec.LLMModel,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
