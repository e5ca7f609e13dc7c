package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite
)

// Repository records solver runs in a sqlite database, one row per
// solved position.
type Repository struct {
	db *sqlx.DB
}

type Solve struct {
	Timestamp time.Time
	Position  string
	Moves     int
	Score     int
	Nodes     uint64
	Duration  time.Duration
	Engine    string
}

func Open(db string) (*Repository, error) {
	conn, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(createSolveTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create solves table: %v", err)
	}
	return &Repository{db: conn}, nil
}

func (r *Repository) InsertSolve(s *Solve) error {
	_, err := r.db.NamedExec(insertStmt, solveRow(s))
	return err
}

func (r *Repository) InsertSolves(ss []*Solve) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	for _, s := range ss {
		if _, err := txn.NamedExec(insertStmt, solveRow(s)); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// Recent returns the most recent solves, newest first.
func (r *Repository) Recent(limit int) ([]*Solve, error) {
	var rows []struct {
		Time       time.Time `db:"time"`
		Position   string    `db:"position"`
		Moves      int       `db:"moves"`
		Score      int       `db:"score"`
		Nodes      int64     `db:"nodes"`
		DurationUS int64     `db:"duration_us"`
		Engine     string    `db:"engine"`
	}
	if err := r.db.Select(&rows, selectRecentStmt, limit); err != nil {
		return nil, err
	}
	out := make([]*Solve, len(rows))
	for i, row := range rows {
		out[i] = &Solve{
			Timestamp: row.Time,
			Position:  row.Position,
			Moves:     row.Moves,
			Score:     row.Score,
			Nodes:     uint64(row.Nodes),
			Duration:  time.Duration(row.DurationUS) * time.Microsecond,
			Engine:    row.Engine,
		}
	}
	return out, nil
}

func (r *Repository) Close() {
	r.db.Close()
}

// solveRow flattens a Solve for insertion; durations are stored in
// microseconds.
func solveRow(s *Solve) map[string]interface{} {
	return map[string]interface{}{
		"time":        s.Timestamp,
		"position":    s.Position,
		"moves":       s.Moves,
		"score":       s.Score,
		"nodes":       int64(s.Nodes),
		"duration_us": s.Duration.Microseconds(),
		"engine":      s.Engine,
	}
}
