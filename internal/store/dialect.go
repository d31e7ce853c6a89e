// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/pdiddy/concept-engine/pkg/types"
)

// dialect holds the SQL that differs between backends. Shared statements
// are written with ? placeholders and passed through rebind.
type dialect struct {
	driver        string
	schema        []string
	upsertKeyword string
	fetchKeywords string
	rebind        func(string) string
	normalizeDSN  func(string) (string, error)
}

func identity(s string) string { return s }

func identityDSN(dsn string) (string, error) { return dsn, nil }

var dialects = map[types.DatabaseType]dialect{
	types.DatabaseSQLite: {
		driver: "sqlite3",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS concept_keywords (
				keyword TEXT NOT NULL,
				model_name TEXT NOT NULL,
				create_count INTEGER NOT NULL DEFAULT 1,
				use_count INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (keyword, model_name)
			)`,
			`CREATE TABLE IF NOT EXISTS concepts (
				id INTEGER PRIMARY KEY,
				name_en TEXT NOT NULL,
				name_jp TEXT NOT NULL,
				description TEXT NOT NULL,
				model_name TEXT NOT NULL,
				entry_date TIMESTAMP NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS concept_tags (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				concept_id INTEGER NOT NULL REFERENCES concepts(id),
				tag TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_concept_tags_concept_id ON concept_tags(concept_id)`,
		},
		upsertKeyword: `INSERT INTO concept_keywords (keyword, model_name, create_count, use_count)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (keyword, model_name) DO UPDATE SET create_count = concept_keywords.create_count + 1`,
		fetchKeywords: `SELECT keyword FROM concept_keywords
			GROUP BY keyword
			ORDER BY ((random() / 18446744073709551616.0) + 0.5) * (9999 - MAX(use_count)) DESC
			LIMIT ?`,
		rebind:       identity,
		normalizeDSN: sqliteDSN,
	},
	types.DatabaseMySQL: {
		driver: "mysql",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS concept_keywords (
				keyword VARCHAR(255) NOT NULL,
				model_name VARCHAR(255) NOT NULL,
				create_count INTEGER NOT NULL DEFAULT 1,
				use_count INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (keyword, model_name)
			) DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS concepts (
				id BIGINT NOT NULL PRIMARY KEY,
				name_en VARCHAR(255) NOT NULL,
				name_jp VARCHAR(255) NOT NULL,
				description TEXT NOT NULL,
				model_name VARCHAR(255) NOT NULL,
				entry_date DATETIME NOT NULL
			) DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS concept_tags (
				id BIGINT NOT NULL PRIMARY KEY AUTO_INCREMENT,
				concept_id BIGINT NOT NULL,
				tag VARCHAR(255) NOT NULL,
				INDEX idx_concept_tags_concept_id (concept_id),
				FOREIGN KEY (concept_id) REFERENCES concepts (id)
			) DEFAULT CHARSET=utf8mb4`,
		},
		upsertKeyword: `INSERT INTO concept_keywords (keyword, model_name, create_count, use_count)
			VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE create_count = create_count + 1`,
		fetchKeywords: `SELECT keyword FROM concept_keywords
			GROUP BY keyword
			ORDER BY RAND() * (9999 - MAX(use_count)) DESC
			LIMIT ?`,
		rebind:       identity,
		normalizeDSN: mysqlDSN,
	},
	types.DatabasePostgres: {
		driver: "pgx",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS concept_keywords (
				keyword TEXT NOT NULL,
				model_name TEXT NOT NULL,
				create_count INTEGER NOT NULL DEFAULT 1,
				use_count INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (keyword, model_name)
			)`,
			`CREATE TABLE IF NOT EXISTS concepts (
				id BIGINT PRIMARY KEY,
				name_en TEXT NOT NULL,
				name_jp TEXT NOT NULL,
				description TEXT NOT NULL,
				model_name TEXT NOT NULL,
				entry_date TIMESTAMPTZ NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS concept_tags (
				id BIGSERIAL PRIMARY KEY,
				concept_id BIGINT NOT NULL REFERENCES concepts(id),
				tag TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_concept_tags_concept_id ON concept_tags(concept_id)`,
		},
		upsertKeyword: `INSERT INTO concept_keywords (keyword, model_name, create_count, use_count)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (keyword, model_name) DO UPDATE SET create_count = concept_keywords.create_count + 1`,
		fetchKeywords: `SELECT keyword FROM concept_keywords
			GROUP BY keyword
			ORDER BY random() * (9999 - MAX(use_count)) DESC
			LIMIT $1`,
		rebind:       dollarPlaceholders,
		normalizeDSN: identityDSN,
	},
}

// dollarPlaceholders rewrites ? placeholders to $1, $2, ... for Postgres.
func dollarPlaceholders(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// sqliteDSN turns on foreign keys and WAL unless the DSN sets its own options.
func sqliteDSN(dsn string) (string, error) {
	if strings.Contains(dsn, "?") {
		return dsn, nil
	}
	return dsn + "?_journal_mode=WAL&_foreign_keys=on", nil
}

// mysqlDSN forces parseTime so entry dates scan into time.Time.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parsing mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
