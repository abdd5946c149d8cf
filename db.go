package main

import (
	"database/sql"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Samy8769/mail-classifier-3/internal/domain"
	"github.com/Samy8769/mail-classifier-3/internal/hybrid"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS classifications (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_ref TEXT NOT NULL,
		axis             TEXT NOT NULL,
		value            TEXT DEFAULT '',
		confidence       REAL NOT NULL,
		method           TEXT NOT NULL,
		classified_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_classifications_ref ON classifications(conversation_ref);
	CREATE INDEX IF NOT EXISTS idx_classifications_date ON classifications(classified_at);

	CREATE TABLE IF NOT EXISTS serial_numbers (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_ref TEXT NOT NULL,
		serial           TEXT NOT NULL,
		extracted_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_serial_numbers_ref ON serial_numbers(conversation_ref);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// InsertClassifications persists every axis decision and every extracted
// serial number of one classification run. Returns the number of axis
// rows written.
func InsertClassifications(db *sql.DB, ref string, out hybrid.Output) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO classifications (conversation_ref, axis, value, confidence, method)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, axis := range sortedAxisNames(out.Axes) {
		r := out.Axes[axis]
		if _, err := stmt.Exec(ref, r.Axis, r.Value, r.Confidence, r.Method); err != nil {
			return inserted, err
		}
		inserted++
	}

	serialStmt, err := tx.Prepare(
		`INSERT INTO serial_numbers (conversation_ref, serial) VALUES (?, ?)`,
	)
	if err != nil {
		return inserted, err
	}
	defer serialStmt.Close()

	for _, serial := range out.SerialNumbers {
		if _, err := serialStmt.Exec(ref, serial); err != nil {
			return inserted, err
		}
	}

	return inserted, tx.Commit()
}

func GetClassificationsByRef(db *sql.DB, ref string) ([]domain.ClassificationRecord, error) {
	rows, err := db.Query(
		`SELECT id, conversation_ref, axis, value, confidence, method, classified_at
		 FROM classifications WHERE conversation_ref = ? ORDER BY axis, id`,
		ref,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ClassificationRecord
	for rows.Next() {
		var r domain.ClassificationRecord
		err := rows.Scan(
			&r.ID, &r.ConversationRef, &r.Axis, &r.Value,
			&r.Confidence, &r.Method, &r.ClassifiedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func GetSerialsByRef(db *sql.DB, ref string) ([]string, error) {
	rows, err := db.Query(
		`SELECT serial FROM serial_numbers WHERE conversation_ref = ? ORDER BY serial`,
		ref,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var serials []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		serials = append(serials, s)
	}
	return serials, rows.Err()
}

// GetClassificationStats aggregates the audit trail. Confidence buckets
// and method counts only consider rows that resolved to a label.
func GetClassificationStats(db *sql.DB, since time.Time) (domain.ClassificationStats, error) {
	var stats domain.ClassificationStats

	err := db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(DISTINCT conversation_ref),
		        COALESCE(AVG(CASE WHEN value <> '' THEN confidence END), 0),
		        COALESCE(SUM(CASE WHEN method = 'heuristic' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN method = 'llm' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN method = 'none' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN value <> '' AND confidence < 0.5 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN value <> '' AND confidence >= 0.5 AND confidence < 0.7 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN value <> '' AND confidence >= 0.7 AND confidence < 0.9 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN value <> '' AND confidence >= 0.9 THEN 1 ELSE 0 END), 0)
		 FROM classifications WHERE classified_at >= ?`,
		since,
	).Scan(
		&stats.TotalClassifications, &stats.Conversations, &stats.AvgConfidence,
		&stats.HeuristicCount, &stats.LLMCount, &stats.NoneCount,
		&stats.BucketBelow50, &stats.Bucket50to70, &stats.Bucket70to90, &stats.Bucket90Plus,
	)
	return stats, err
}

func sortedAxisNames(axes map[string]hybrid.AxisResult) []string {
	names := make([]string, 0, len(axes))
	for name := range axes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
