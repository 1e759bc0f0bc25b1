package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/config"
	"github.com/xyaoaf/flight-route-map/routes"
)

// ErrLogNotFound is returned when no saved flight log has the requested ID.
var ErrLogNotFound = errors.New("flight log not found")

// FlightLog is a saved, parsed flight log.
type FlightLog struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Routes    []routes.Route `json:"routes"`
	Flights   int            `json:"flights"`
	SHA256    string         `json:"sha256"`
	CreatedAt time.Time      `json:"created_at"`
}

// LogSummary is a FlightLog without its routes.
type LogSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Flights   int       `json:"flights"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists flight logs and airport overrides in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects a pool and verifies it with a ping.
func Open(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// SaveLog stores a parsed log under a fresh ID. raw is the uploaded file and
// only contributes its checksum.
func (s *Store) SaveLog(ctx context.Context, name string, raw []byte, rs []routes.Route) (FlightLog, error) {
	if rs == nil {
		rs = []routes.Route{}
	}
	body, err := json.Marshal(rs)
	if err != nil {
		return FlightLog{}, fmt.Errorf("encode routes: %w", err)
	}
	sum := sha256.Sum256(raw)

	log := FlightLog{
		ID:      uuid.New(),
		Name:    name,
		Routes:  rs,
		Flights: len(rs),
		SHA256:  hex.EncodeToString(sum[:]),
	}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO flight_logs (id, name, routes, flights, content_sha256)
		VALUES ($1::uuid, $2, $3::jsonb, $4, $5)
		RETURNING created_at`,
		log.ID.String(), log.Name, string(body), log.Flights, log.SHA256,
	).Scan(&log.CreatedAt)
	if err != nil {
		return FlightLog{}, fmt.Errorf("insert flight log: %w", err)
	}
	return log, nil
}

// GetLog loads a saved log.
func (s *Store) GetLog(ctx context.Context, id uuid.UUID) (FlightLog, error) {
	var (
		log  FlightLog
		body []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT name, routes::text, flights, content_sha256, created_at
		FROM flight_logs WHERE id = $1::uuid`, id.String(),
	).Scan(&log.Name, &body, &log.Flights, &log.SHA256, &log.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FlightLog{}, ErrLogNotFound
		}
		return FlightLog{}, fmt.Errorf("select flight log %s: %w", id, err)
	}
	if err := json.Unmarshal(body, &log.Routes); err != nil {
		return FlightLog{}, fmt.Errorf("decode routes of %s: %w", id, err)
	}
	log.ID = id
	return log, nil
}

// ListLogs returns the newest logs first.
func (s *Store) ListLogs(ctx context.Context, limit int) ([]LogSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, name, flights, created_at
		FROM flight_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list flight logs: %w", err)
	}
	defer rows.Close()

	out := []LogSummary{}
	for rows.Next() {
		var (
			sum LogSummary
			id  string
		)
		if err := rows.Scan(&id, &sum.Name, &sum.Flights, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan flight log: %w", err)
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse flight log id %q: %w", id, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteLog removes a saved log.
func (s *Store) DeleteLog(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM flight_logs WHERE id = $1::uuid`, id.String())
	if err != nil {
		return fmt.Errorf("delete flight log %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

// AirportOverrides returns the airports stored in the database. They are
// merged over the built-in table at startup.
func (s *Store) AirportOverrides(ctx context.Context) ([]airports.Airport, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT code, name, region, longitude, latitude
		FROM airport_overrides ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("select airport overrides: %w", err)
	}
	defer rows.Close()

	var out []airports.Airport
	for rows.Next() {
		var a airports.Airport
		if err := rows.Scan(&a.Code, &a.Name, &a.Region, &a.Lon, &a.Lat); err != nil {
			return nil, fmt.Errorf("scan airport override: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpsertAirports validates and writes overrides in one batch.
func (s *Store) UpsertAirports(ctx context.Context, rows []airports.Airport) error {
	batch := &pgx.Batch{}
	for _, a := range rows {
		if err := a.Validate(); err != nil {
			return err
		}
		batch.Queue(`
			INSERT INTO airport_overrides (code, name, region, longitude, latitude, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				region = EXCLUDED.region,
				longitude = EXCLUDED.longitude,
				latitude = EXCLUDED.latitude,
				updated_at = NOW()`,
			a.Code, a.Name, a.Region, a.Lon, a.Lat)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, a := range rows {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert airport %s: %w", a.Code, err)
		}
	}
	return nil
}
