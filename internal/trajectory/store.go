package trajectory

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id           TEXT PRIMARY KEY,
	engine           TEXT NOT NULL,
	horizon          INTEGER NOT NULL,
	target_position  REAL NOT NULL,
	target_velocity  REAL NOT NULL,
	initial_position REAL NOT NULL,
	initial_velocity REAL NOT NULL,
	started_at       TEXT NOT NULL,
	metadata_json    TEXT
);

CREATE TABLE IF NOT EXISTS steps (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id           TEXT NOT NULL,
	step             INTEGER NOT NULL,
	action           REAL NOT NULL,
	position         REAL NOT NULL,
	velocity         REAL NOT NULL,
	predicted        BLOB,
	diagnostics_json TEXT,
	decision         TEXT NOT NULL,
	reason           TEXT,
	created_at       TEXT NOT NULL,
	UNIQUE (run_id, step),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// #endregion schema

// #region records

// RunRecord describes one recorded control run.
type RunRecord struct {
	RunID           string
	Engine          string
	Horizon         int
	TargetPosition  float64
	TargetVelocity  float64
	InitialPosition float64
	InitialVelocity float64
	StartedAt       time.Time
	MetadataJSON    string
}

// StepRecord is the per-timestep triple (action, observation, predicted
// future) plus the guard decision for that step.
type StepRecord struct {
	Step            int
	Action          float64
	Position        float64
	Velocity        float64
	Predicted       []float64 // predicted future positions over the horizon
	DiagnosticsJSON string
	Decision        string // "continue" | "abort"
	Reason          string
	CreatedAt       time.Time
}

// #endregion records

// #region store-struct
// Store persists runs and their per-step records in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region begin-run
// BeginRun inserts a new run row and returns it with a fresh ID.
func (s *Store) BeginRun(rec RunRecord) (RunRecord, error) {
	rec.RunID = uuid.New().String()
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, engine, horizon, target_position, target_velocity,
		                   initial_position, initial_velocity, started_at, metadata_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Engine, rec.Horizon, rec.TargetPosition, rec.TargetVelocity,
		rec.InitialPosition, rec.InitialVelocity, rec.StartedAt.Format(time.RFC3339Nano),
		nullIfEmpty(rec.MetadataJSON),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}

// #endregion begin-run

// #region record-step
// RecordStep appends one step record to a run.
func (s *Store) RecordStep(runID string, rec StepRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO steps (run_id, step, action, position, velocity, predicted,
		                    diagnostics_json, decision, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.Step, rec.Action, rec.Position, rec.Velocity,
		encodePredicted(rec.Predicted), nullIfEmpty(rec.DiagnosticsJSON),
		rec.Decision, nullIfEmpty(rec.Reason), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert step %d: %w", rec.Step, err)
	}
	return nil
}

// #endregion record-step

// #region get-run
// GetRun retrieves one run by ID.
func (s *Store) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var startedStr string
	var metadataJSON sql.NullString

	err := s.db.QueryRow(
		`SELECT run_id, engine, horizon, target_position, target_velocity,
		        initial_position, initial_velocity, started_at, metadata_json
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.Engine, &rec.Horizon, &rec.TargetPosition, &rec.TargetVelocity,
		&rec.InitialPosition, &rec.InitialVelocity, &startedStr, &metadataJSON)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	if metadataJSON.Valid {
		rec.MetadataJSON = metadataJSON.String
	}
	return rec, nil
}

// ListRuns returns the most recent runs.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, engine, horizon, target_position, target_velocity,
		        initial_position, initial_velocity, started_at, metadata_json
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var startedStr string
		var metadataJSON sql.NullString
		if err := rows.Scan(&rec.RunID, &rec.Engine, &rec.Horizon, &rec.TargetPosition,
			&rec.TargetVelocity, &rec.InitialPosition, &rec.InitialVelocity,
			&startedStr, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		if metadataJSON.Valid {
			rec.MetadataJSON = metadataJSON.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion get-run

// #region steps
// Steps returns a run's step records in execution order.
func (s *Store) Steps(runID string) ([]StepRecord, error) {
	rows, err := s.db.Query(
		`SELECT step, action, position, velocity, predicted, diagnostics_json, decision, reason, created_at
		 FROM steps WHERE run_id = ? ORDER BY step ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var records []StepRecord
	for rows.Next() {
		var rec StepRecord
		var predicted []byte
		var diagnosticsJSON, reason sql.NullString
		var createdStr string
		if err := rows.Scan(&rec.Step, &rec.Action, &rec.Position, &rec.Velocity,
			&predicted, &diagnosticsJSON, &rec.Decision, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		rec.Predicted = decodePredicted(predicted)
		if diagnosticsJSON.Valid {
			rec.DiagnosticsJSON = diagnosticsJSON.String
		}
		if reason.Valid {
			rec.Reason = reason.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion steps

// #region predicted-encoding
func encodePredicted(v []float64) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*8)
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

func decodePredicted(b []byte) []float64 {
	if len(b) < 8 {
		return nil
	}
	v := make([]float64, len(b)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return v
}

// #endregion predicted-encoding

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
