package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/boulder-daily/internal/games/boulder/engine"
)

// Run is one stored run with its verification outcome.
type Run struct {
	ID          string
	Mode        string
	Seed        string
	ServerNonce string
	Score       int
	Gems        int
	TimeMs      int64
	Won         bool
	Ticks       int
	History     engine.History
	Verified    bool
	Suspicious  bool
	Reason      string
	CreatedAt   time.Time
}

// Stats aggregates the runs recorded for one seed.
type Stats struct {
	Runs       int
	Verified   int
	Suspicious int
	Wins       int
	BestScore  int
	AvgScore   float64
}

// EncodeAll and DecodeAll are safe for concurrent use on shared coders.
var (
	historyEncoder = mustCoder(zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression)))
	historyDecoder = mustCoder(zstd.NewReader(nil))
)

// mustCoder panics when a history coder cannot be built. Both only fail on
// invalid options, which are fixed here.
func mustCoder[T any](c T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("storage: cannot build zstd history coder: %v", err))
	}
	return c
}

func packHistory(h engine.History) ([]byte, error) {
	if h == nil {
		h = engine.History{}
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return historyEncoder.EncodeAll(raw, nil), nil
}

func unpackHistory(blob []byte) (engine.History, error) {
	raw, err := historyDecoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, err
	}
	var h engine.History
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, err
	}
	return h, nil
}

// SaveRun inserts a run. An empty ID is replaced with a new UUID and a zero
// CreatedAt with the current time; the stored ID is returned.
func (s *Store) SaveRun(ctx context.Context, r *Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	blob, err := packHistory(r.History)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode history: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, mode, seed, server_nonce, score, gems, time_ms, won, ticks,
		                   history, verified, suspicious, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Mode, r.Seed, r.ServerNonce, r.Score, r.Gems, r.TimeMs, r.Won, r.Ticks,
		blob, r.Verified, r.Suspicious, r.Reason, r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, mode, seed, server_nonce, score, gems, time_ms, won, ticks,
	history, verified, suspicious, reason, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		r       Run
		blob    []byte
		created int64
	)
	err := row.Scan(&r.ID, &r.Mode, &r.Seed, &r.ServerNonce, &r.Score, &r.Gems, &r.TimeMs,
		&r.Won, &r.Ticks, &blob, &r.Verified, &r.Suspicious, &r.Reason, &created)
	if err != nil {
		return nil, err
	}
	if r.History, err = unpackHistory(blob); err != nil {
		return nil, fmt.Errorf("storage: run %s: corrupt history: %w", r.ID, err)
	}
	r.CreatedAt = time.UnixMilli(created).UTC()
	return &r, nil
}

// GetRun loads a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load run: %w", err)
	}
	return r, nil
}

// TopRuns returns the best verified, non-suspicious runs for a seed:
// highest score first, then fastest time.
func (s *Store) TopRuns(ctx context.Context, seed string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE seed = ? AND verified = 1 AND suspicious = 0
		 ORDER BY score DESC, time_ms ASC, created_at ASC
		 LIMIT ?`,
		seed, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunStats aggregates every run recorded for a seed.
func (s *Store) RunStats(ctx context.Context, seed string) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(verified), 0),
		        COALESCE(SUM(suspicious), 0),
		        COALESCE(SUM(CASE WHEN won = 1 AND verified = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN verified = 1 THEN score END), 0),
		        COALESCE(AVG(score), 0)
		 FROM runs WHERE seed = ?`,
		seed,
	).Scan(&st.Runs, &st.Verified, &st.Suspicious, &st.Wins, &st.BestScore, &st.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return &st, nil
}
