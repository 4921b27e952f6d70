package sqlite

import (
	"database/sql"
	"fmt"
)

// Fechas como TEXT "2006-01-02" y marcas de tiempo como TEXT RFC 3339 en UTC.
const schema = `
CREATE TABLE IF NOT EXISTS quilts (
    id               TEXT PRIMARY KEY,
    item_number      INTEGER NOT NULL UNIQUE,
    group_id         INTEGER,
    name             TEXT NOT NULL,
    season           TEXT NOT NULL CHECK (season IN ('winter', 'spring_autumn', 'summer')),
    length_cm        INTEGER NOT NULL,
    width_cm         INTEGER NOT NULL,
    weight_grams     INTEGER NOT NULL,
    fill_material    TEXT NOT NULL,
    material_details TEXT NOT NULL DEFAULT '',
    color            TEXT NOT NULL,
    brand            TEXT,
    purchase_date    TEXT,
    location         TEXT NOT NULL,
    packaging_info   TEXT,
    current_status   TEXT NOT NULL CHECK (current_status IN ('available', 'in_use', 'maintenance', 'storage')),
    notes            TEXT,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS usage_periods (
    id          TEXT PRIMARY KEY,
    quilt_id    TEXT NOT NULL REFERENCES quilts(id) ON DELETE CASCADE,
    start_date  TEXT NOT NULL,
    end_date    TEXT NOT NULL,
    season_used TEXT NOT NULL,
    notes       TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL,
    CHECK (end_date >= start_date)
);

CREATE INDEX IF NOT EXISTS idx_usage_periods_quilt
    ON usage_periods(quilt_id, start_date);

CREATE TABLE IF NOT EXISTS current_usage (
    id                TEXT PRIMARY KEY,
    quilt_id          TEXT NOT NULL UNIQUE REFERENCES quilts(id) ON DELETE CASCADE,
    started_at        TEXT NOT NULL,
    expected_end_date TEXT,
    usage_type        TEXT NOT NULL DEFAULT 'regular',
    notes             TEXT,
    created_at        TEXT NOT NULL
);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
