// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sitesearch/pkg/types"
)

const schema = `CREATE TABLE IF NOT EXISTS videos (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	keywords TEXT NOT NULL DEFAULT '[]'
)`

// sqliteDSN builds a file: URI for path. The path is made absolute and
// escaped, so '?' '#' and '%' in file names survive.
func sqliteDSN(path string, params url.Values) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: params.Encode()}
	return u.String(), nil
}

// LoadSQLite reads the videos table of the SQLite database at path, in
// position order.
func LoadSQLite(path string) ([]types.ContentItem, error) {
	return ReadSQLite(context.Background(), path)
}

// ReadSQLite is LoadSQLite with a caller-supplied context.
func ReadSQLite(ctx context.Context, path string) ([]types.ContentItem, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	dsn, err := sqliteDSN(path, url.Values{"mode": {"ro"}})
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, title, category, description, keywords FROM videos ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying videos: %w", err)
	}
	defer rows.Close()

	items := []types.ContentItem{}
	for rows.Next() {
		var item types.ContentItem
		var keywordsJSON string
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.Description, &keywordsJSON); err != nil {
			return nil, fmt.Errorf("scanning video: %w", err)
		}
		if keywordsJSON != "" {
			if err := json.Unmarshal([]byte(keywordsJSON), &item.Keywords); err != nil {
				return nil, fmt.Errorf("video %s: decoding keywords: %w", item.ID, err)
			}
		}
		if len(item.Keywords) == 0 {
			item.Keywords = nil
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading videos: %w", err)
	}

	if err := Validate(items); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// WriteSQLite writes items to the videos table of the database at path,
// replacing its previous contents. Collection order is kept in the
// position column.
func WriteSQLite(ctx context.Context, path string, items []types.ContentItem) error {
	if err := Validate(items); err != nil {
		return err
	}

	dsn, err := sqliteDSN(path, url.Values{"_journal_mode": {"WAL"}})
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM videos`); err != nil {
		return fmt.Errorf("clearing videos: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO videos (position, id, title, category, description, keywords)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		keywords := item.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		keywordsJSON, _ := json.Marshal(keywords)
		if _, err := stmt.ExecContext(ctx,
			i, item.ID, item.Title, item.Category, item.Description, string(keywordsJSON),
		); err != nil {
			return fmt.Errorf("inserting video %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}
