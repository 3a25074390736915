package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ais_relay/internal/ais"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool for vessel state.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the PostgreSQL tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	-- Current state: one row per vessel, upserted from static data and
	-- position reports.
	CREATE TABLE IF NOT EXISTS vessels (
		mmsi            BIGINT PRIMARY KEY,
		name            TEXT NOT NULL DEFAULT '',
		call_sign       TEXT NOT NULL DEFAULT '',
		ship_type       INTEGER NOT NULL DEFAULT 0,
		imo_number      BIGINT NOT NULL DEFAULT 0,
		length_m        INTEGER NOT NULL DEFAULT 0,
		beam_m          INTEGER NOT NULL DEFAULT 0,
		last_longitude  DOUBLE PRECISION,
		last_latitude   DOUBLE PRECISION,
		last_sog        INTEGER,
		last_cog        INTEGER,
		nav_status      INTEGER NOT NULL DEFAULT 15,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		msg_count       BIGINT NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_vessels_name ON vessels(name);
	CREATE INDEX IF NOT EXISTS idx_vessels_last_seen ON vessels(last_seen);

	-- Voyages announced by static-and-voyage messages.
	CREATE TABLE IF NOT EXISTS voyages (
		id              SERIAL PRIMARY KEY,
		mmsi            BIGINT NOT NULL,
		destination     TEXT NOT NULL,
		eta_month       INTEGER NOT NULL,
		eta_day         INTEGER NOT NULL,
		eta_hour        INTEGER NOT NULL,
		eta_minute      INTEGER NOT NULL,
		draught_dm      INTEGER NOT NULL,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(mmsi, destination, eta_month, eta_day, eta_hour, eta_minute)
	);

	CREATE INDEX IF NOT EXISTS idx_voyages_mmsi ON voyages(mmsi);
	`
	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Vessel is the current state of one tracked vessel.
type Vessel struct {
	MMSI      uint32    `json:"mmsi"`
	Name      string    `json:"name,omitempty"`
	CallSign  string    `json:"call_sign,omitempty"`
	ShipType  int       `json:"ship_type,omitempty"`
	IMONumber uint32    `json:"imo_number,omitempty"`
	LengthM   int       `json:"length_m,omitempty"`
	BeamM     int       `json:"beam_m,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	SOG       *int      `json:"sog,omitempty"` // 1/10 knot
	COG       *int      `json:"cog,omitempty"` // 1/10 degree
	NavStatus int       `json:"nav_status"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	MsgCount  int64     `json:"msg_count"`
}

// Apply folds one decoded message into vessel state. Messages without
// vessel-level content are counted but change nothing else.
func (d *PostgresDB) Apply(ctx context.Context, msg ais.Message, at time.Time) error {
	switch m := msg.(type) {
	case *ais.PositionReport:
		return d.upsertPosition(ctx, m.MMSI, m.Pos, uint16(m.SOG), uint16(m.COG), int(m.NavStatus), at)
	case *ais.StandardClassBReport:
		return d.upsertPosition(ctx, m.MMSI, m.Pos, uint16(m.SOG), uint16(m.COG), int(ais.StatusNotDefined), at)
	case *ais.ExtendedClassBReport:
		if err := d.upsertPosition(ctx, m.MMSI, m.Pos, uint16(m.SOG), uint16(m.COG), int(ais.StatusNotDefined), at); err != nil {
			return err
		}
		return d.upsertStatic(ctx, m.MMSI, m.ShipName, "", int(m.ShipType), 0, m.Dim, at)
	case *ais.StaticAndVoyageData:
		if err := d.upsertStatic(ctx, m.MMSI, m.ShipName, m.CallSign, int(m.ShipType), m.IMONumber, m.Dim, at); err != nil {
			return err
		}
		return d.upsertVoyage(ctx, m, at)
	case *ais.StaticDataReport:
		if m.PartNumber == ais.PartA {
			return d.upsertStatic(ctx, m.MMSI, m.ShipName, "", 0, 0, ais.Dimension{}, at)
		}
		return d.upsertStatic(ctx, m.MMSI, "", m.CallSign, int(m.ShipType), 0, m.Dim, at)
	default:
		// No vessel-level content.
		return nil
	}
}

func (d *PostgresDB) upsertPosition(ctx context.Context, mmsi uint32, pos ais.Position, sog, cog uint16, navStatus int, at time.Time) error {
	var lon, lat *float64
	if pos.Available() {
		lo, la := pos.Longitude(), pos.Latitude()
		lon, lat = &lo, &la
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO vessels (mmsi, last_longitude, last_latitude, last_sog, last_cog, nav_status, first_seen, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (mmsi) DO UPDATE SET
			last_longitude = COALESCE($2, vessels.last_longitude),
			last_latitude  = COALESCE($3, vessels.last_latitude),
			last_sog       = $4,
			last_cog       = $5,
			nav_status     = $6,
			last_seen      = $7,
			msg_count      = vessels.msg_count + 1`,
		int64(mmsi), lon, lat, int(sog), int(cog), navStatus, at)
	if err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}
	return nil
}

func (d *PostgresDB) upsertStatic(ctx context.Context, mmsi uint32, name, callSign string, shipType int, imo uint32, dim ais.Dimension, at time.Time) error {
	length := int(dim.Bow) + int(dim.Stern)
	beam := int(dim.Port) + int(dim.Starboard)
	_, err := d.pool.Exec(ctx, `
		INSERT INTO vessels (mmsi, name, call_sign, ship_type, imo_number, length_m, beam_m, first_seen, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (mmsi) DO UPDATE SET
			name       = CASE WHEN $2 <> '' THEN $2 ELSE vessels.name END,
			call_sign  = CASE WHEN $3 <> '' THEN $3 ELSE vessels.call_sign END,
			ship_type  = CASE WHEN $4 <> 0 THEN $4 ELSE vessels.ship_type END,
			imo_number = CASE WHEN $5 <> 0 THEN $5 ELSE vessels.imo_number END,
			length_m   = CASE WHEN $6 <> 0 THEN $6 ELSE vessels.length_m END,
			beam_m     = CASE WHEN $7 <> 0 THEN $7 ELSE vessels.beam_m END,
			last_seen  = $8,
			msg_count  = vessels.msg_count + 1`,
		int64(mmsi), name, callSign, shipType, int64(imo), length, beam, at)
	if err != nil {
		return fmt.Errorf("upsert static: %w", err)
	}
	return nil
}

func (d *PostgresDB) upsertVoyage(ctx context.Context, m *ais.StaticAndVoyageData, at time.Time) error {
	if m.Destination == "" {
		return nil
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO voyages (mmsi, destination, eta_month, eta_day, eta_hour, eta_minute, draught_dm, first_seen, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (mmsi, destination, eta_month, eta_day, eta_hour, eta_minute) DO UPDATE SET
			draught_dm = $7,
			last_seen  = $8`,
		int64(m.MMSI), m.Destination, int(m.ETAMonth), int(m.ETADay), int(m.ETAHour), int(m.ETAMinute),
		int(m.Draught), at)
	if err != nil {
		return fmt.Errorf("upsert voyage: %w", err)
	}
	return nil
}

// GetVessel returns the state row for one MMSI, or nil if never seen.
func (d *PostgresDB) GetVessel(ctx context.Context, mmsi uint32) (*Vessel, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT mmsi, name, call_sign, ship_type, imo_number, length_m, beam_m,
		       last_longitude, last_latitude, last_sog, last_cog, nav_status,
		       first_seen, last_seen, msg_count
		FROM vessels WHERE mmsi = $1`, int64(mmsi))
	v, err := scanVessel(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

// ListVessels returns vessel state ordered by most recently seen.
func (d *PostgresDB) ListVessels(ctx context.Context, limit int) ([]Vessel, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.pool.Query(ctx, `
		SELECT mmsi, name, call_sign, ship_type, imo_number, length_m, beam_m,
		       last_longitude, last_latitude, last_sog, last_cog, nav_status,
		       first_seen, last_seen, msg_count
		FROM vessels ORDER BY last_seen DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query vessels: %w", err)
	}
	defer rows.Close()

	var vessels []Vessel
	for rows.Next() {
		v, err := scanVessel(rows)
		if err != nil {
			return nil, err
		}
		vessels = append(vessels, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vessels: %w", err)
	}
	return vessels, nil
}

func scanVessel(row pgx.Row) (*Vessel, error) {
	var v Vessel
	var mmsi, imo int64
	err := row.Scan(&mmsi, &v.Name, &v.CallSign, &v.ShipType, &imo, &v.LengthM, &v.BeamM,
		&v.Longitude, &v.Latitude, &v.SOG, &v.COG, &v.NavStatus,
		&v.FirstSeen, &v.LastSeen, &v.MsgCount)
	if err != nil {
		return nil, err
	}
	v.MMSI = uint32(mmsi)
	v.IMONumber = uint32(imo)
	return &v, nil
}
