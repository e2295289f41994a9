package metrics

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryStore persists Recorder snapshots across runs, following
// DeltaCLI-Delta/vector_db.go's VectorDBManager shape: sql.Open once,
// create-table-if-not-exists on Initialize, plain Exec calls for writes.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistoryStore opens (creating if needed) a sqlite3-backed history
// database at path and ensures its schema exists.
func OpenHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	hs := &HistoryStore{db: db}
	if err := hs.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return hs, nil
}

func (hs *HistoryStore) initializeSchema() error {
	_, err := hs.db.Exec(`
		CREATE TABLE IF NOT EXISTS run_history (
			run_id              INTEGER PRIMARY KEY AUTOINCREMENT,
			engine_id           TEXT NOT NULL,
			recorded_at         INTEGER NOT NULL,
			total_inputs        INTEGER NOT NULL,
			categories_learned  INTEGER NOT NULL,
			correct_predictions INTEGER NOT NULL,
			incorrect_predictions INTEGER NOT NULL,
			match_tracking_retries INTEGER NOT NULL,
			accuracy_rate       REAL NOT NULL
		)
	`)
	if err != nil {
		return err
	}
	_, err = hs.db.Exec(`CREATE INDEX IF NOT EXISTS idx_engine_id ON run_history(engine_id)`)
	return err
}

// Record inserts one Recorder snapshot under engineID, timestamped now.
func (hs *HistoryStore) Record(engineID string, s Snapshot) error {
	_, err := hs.db.Exec(
		`INSERT INTO run_history
			(engine_id, recorded_at, total_inputs, categories_learned,
			 correct_predictions, incorrect_predictions,
			 match_tracking_retries, accuracy_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		engineID, time.Now().Unix(), s.TotalInputs, s.CategoriesLearned,
		s.CorrectPredictions, s.IncorrectPredictions,
		s.MatchTrackingRetries, s.AccuracyRate,
	)
	return err
}

// Recent returns the last n recorded snapshots for engineID, most recent
// first.
func (hs *HistoryStore) Recent(engineID string, n int) ([]Snapshot, error) {
	rows, err := hs.db.Query(
		`SELECT total_inputs, categories_learned, correct_predictions,
			incorrect_predictions, match_tracking_retries, accuracy_rate, recorded_at
		 FROM run_history WHERE engine_id = ?
		 ORDER BY recorded_at DESC, run_id DESC LIMIT ?`,
		engineID, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var unixTime int64
		if err := rows.Scan(&s.TotalInputs, &s.CategoriesLearned, &s.CorrectPredictions,
			&s.IncorrectPredictions, &s.MatchTrackingRetries, &s.AccuracyRate, &unixTime); err != nil {
			return nil, err
		}
		s.LastUpdate = time.Unix(unixTime, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (hs *HistoryStore) Close() error {
	return hs.db.Close()
}
