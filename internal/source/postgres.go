package source

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/searchcore/invindex/pkg/config"
	apperrors "github.com/searchcore/invindex/pkg/errors"
	"github.com/searchcore/invindex/pkg/postgres"
)

// Postgres streams documents from the rows of a configured query that
// returns (id, text) pairs.
type Postgres struct {
	client *postgres.Client
	rows   *sql.Rows
}

// OpenPostgres connects to PostgreSQL and starts the document query.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	client, err := postgres.New(cfg)
	if err != nil {
		return nil, err
	}
	rows, err := client.Query(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &Postgres{client: client, rows: rows}, nil
}

func (s *Postgres) Next(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return Document{}, fmt.Errorf("reading document rows: %w", err)
		}
		return Document{}, io.EOF
	}
	var id int64
	var text string
	if err := s.rows.Scan(&id, &text); err != nil {
		return Document{}, apperrors.Parse("scanning document row: %v", err)
	}
	if id < 0 || id > int64(^uint32(0)) {
		return Document{}, apperrors.Parse("document id %d out of range", id)
	}
	return Document{ID: uint32(id), Text: text}, nil
}

func (s *Postgres) Close() error {
	s.rows.Close()
	return s.client.Close()
}
