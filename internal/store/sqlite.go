// Package store persists the append-only log of successful weather queries.
package store

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mkhalid12/weather-dashboard/internal/weather"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	city TEXT NOT NULL,
	temperature REAL NOT NULL,
	humidity REAL NOT NULL,
	weather TEXT NOT NULL,
	wind_speed REAL NOT NULL,
	visibility TEXT NOT NULL,
	pressure REAL NOT NULL,
	sunrise TEXT NOT NULL,
	sunset TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
`

// HistoryRow is one persisted query-log entry. Visibility keeps the
// display-formatted string ("12.3 km" or "N/A") so rows round-trip exactly
// as they were shown.
type HistoryRow struct {
	ID          int64   `db:"id" json:"id"`
	City        string  `db:"city" json:"city"`
	Temperature float64 `db:"temperature" json:"temperature"`
	Humidity    float64 `db:"humidity" json:"humidity"`
	Weather     string  `db:"weather" json:"weather"`
	WindSpeed   float64 `db:"wind_speed" json:"windSpeed"`
	Visibility  string  `db:"visibility" json:"visibility"`
	Pressure    float64 `db:"pressure" json:"pressure"`
	Sunrise     string  `db:"sunrise" json:"sunrise"`
	Sunset      string  `db:"sunset" json:"sunset"`
	Timestamp   string  `db:"timestamp" json:"timestamp"`
}

// HistoryStore is an append-only SQLite log of successful weather queries.
// Repeated queries for the same city create new rows: it is a log, not a
// cache. Rows are never updated or deleted.
type HistoryStore struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path and ensures the history table
// exists.
func Open(path string) (*HistoryStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// Append writes one row for a successful query and returns its row id. The
// insert is a single statement, so the row lands atomically or not at all.
func (s *HistoryStore) Append(rec weather.WeatherRecord) (int64, error) {
	queriedAt := rec.QueriedAt
	if queriedAt.IsZero() {
		queriedAt = time.Now().UTC()
	}

	res, err := s.db.Exec(
		`INSERT INTO history (city, temperature, humidity, weather, wind_speed, visibility, pressure, sunrise, sunset, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.City,
		rec.TemperatureC,
		rec.HumidityPct,
		rec.Description,
		rec.WindSpeedMPS,
		rec.Visibility,
		rec.PressureHpa,
		rec.Sunrise,
		rec.Sunset,
		queriedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("append history row: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history row id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit rows, newest first. Non-positive limits fall
// back to 10; limits above 100 are capped at 100.
func (s *HistoryStore) Recent(limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}

	rows := []HistoryRow{}
	err := s.db.Select(&rows,
		`SELECT id, city, temperature, humidity, weather, wind_speed, visibility, pressure, sunrise, sunset, timestamp
		 FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return rows, nil
}

// Close closes the underlying database handle.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
