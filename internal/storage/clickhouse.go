package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"ais_relay/internal/ais"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for the position-report
// stream.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying ClickHouse connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the ClickHouse tables.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS position_reports (
		mmsi            UInt32,
		message_type    UInt8,
		received_at     DateTime64(3),
		raw_longitude   UInt32,
		raw_latitude    UInt32,
		longitude       Float64,
		latitude        Float64,
		available       UInt8,
		sog             UInt16,
		cog             UInt16,
		heading         UInt16,
		nav_status      UInt8,
		channel         LowCardinality(String),
		raw_sentence    String
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(received_at)
	ORDER BY (mmsi, received_at)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// PositionRow is one row of the position_reports table.
type PositionRow struct {
	MMSI        uint32
	MessageType uint8
	ReceivedAt  time.Time
	RawLon      uint32
	RawLat      uint32
	Longitude   float64
	Latitude    float64
	Available   bool
	SOG         uint16 // 1/10 knot, 1023 = not available
	COG         uint16 // 1/10 degree, 3600 = not available
	Heading     uint16 // degrees, 511 = not available
	NavStatus   uint8  // 15 = not defined
	Channel     string
	RawSentence string
}

// PositionRowFromMessage extracts a position row from any message type
// that reports one. The second return is false for types without a
// position.
func PositionRowFromMessage(msg ais.Message, at time.Time) (PositionRow, bool) {
	row := PositionRow{
		MessageType: msg.Type(),
		ReceivedAt:  at,
		Heading:     uint16(ais.HeadingNotAvailable),
		NavStatus:   uint8(ais.StatusNotDefined),
	}

	fill := func(mmsi uint32, pos ais.Position, sog ais.SpeedOverGround, cog ais.CourseOverGround) {
		row.MMSI = mmsi
		row.RawLon = pos.RawLongitude
		row.RawLat = pos.RawLatitude
		row.Longitude = pos.Longitude()
		row.Latitude = pos.Latitude()
		row.Available = pos.Available()
		row.SOG = uint16(sog)
		row.COG = uint16(cog)
	}

	switch m := msg.(type) {
	case *ais.PositionReport:
		fill(m.MMSI, m.Pos, m.SOG, m.COG)
		row.Heading = uint16(m.TrueHeading)
		row.NavStatus = uint8(m.NavStatus)
	case *ais.BaseStationReport:
		fill(m.MMSI, m.Pos, ais.SpeedNotAvailable, ais.CourseNotAvailable)
	case *ais.SARAircraftReport:
		fill(m.MMSI, m.Pos, ais.SpeedOverGround(m.SOG), m.COG)
	case *ais.StandardClassBReport:
		fill(m.MMSI, m.Pos, m.SOG, m.COG)
		row.Heading = uint16(m.TrueHeading)
	case *ais.ExtendedClassBReport:
		fill(m.MMSI, m.Pos, m.SOG, m.COG)
		row.Heading = uint16(m.TrueHeading)
	case *ais.AidsToNavigationReport:
		fill(m.MMSI, m.Pos, ais.SpeedNotAvailable, ais.CourseNotAvailable)
	case *ais.LongRangeBroadcastMessage:
		row.MMSI = m.MMSI
		row.RawLon = m.Pos.RawLongitude
		row.RawLat = m.Pos.RawLatitude
		row.Longitude = m.Pos.Longitude()
		row.Latitude = m.Pos.Latitude()
		row.Available = m.Pos.Available()
		row.NavStatus = uint8(m.NavStatus)
		// Whole knots and degrees on the wire, stored in tenths.
		if m.SOG == ais.LongRangeSpeedNotAvailable {
			row.SOG = uint16(ais.SpeedNotAvailable)
		} else {
			row.SOG = uint16(m.SOG) * 10
		}
		if m.COG == ais.LongRangeCourseNotAvailable {
			row.COG = uint16(ais.CourseNotAvailable)
		} else {
			row.COG = m.COG * 10
		}
	default:
		return PositionRow{}, false
	}
	return row, true
}

// InsertPositions stores a batch of position rows.
func (d *ClickHouseDB) InsertPositions(ctx context.Context, rows []PositionRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO position_reports (mmsi, message_type, received_at, raw_longitude, raw_latitude, longitude, latitude, available, sog, cog, heading, nav_status, channel, raw_sentence)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		avail := uint8(0)
		if r.Available {
			avail = 1
		}
		err = batch.Append(r.MMSI, r.MessageType, r.ReceivedAt, r.RawLon, r.RawLat,
			r.Longitude, r.Latitude, avail, r.SOG, r.COG, r.Heading, r.NavStatus,
			r.Channel, r.RawSentence)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// Count returns the total number of stored position reports, optionally
// for one MMSI.
func (d *ClickHouseDB) Count(ctx context.Context, mmsi uint32) (uint64, error) {
	var count uint64
	var err error
	if mmsi != 0 {
		row := d.conn.QueryRow(ctx, "SELECT count() FROM position_reports WHERE mmsi = ?", mmsi)
		err = row.Scan(&count)
	} else {
		row := d.conn.QueryRow(ctx, "SELECT count() FROM position_reports")
		err = row.Scan(&count)
	}
	return count, err
}

// Track returns the stored positions for one vessel, newest first.
func (d *ClickHouseDB) Track(ctx context.Context, mmsi uint32, limit int) ([]PositionRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.conn.Query(ctx, `
		SELECT mmsi, message_type, received_at, raw_longitude, raw_latitude, longitude, latitude, available, sog, cog, heading, nav_status, channel, raw_sentence
		FROM position_reports WHERE mmsi = ? ORDER BY received_at DESC LIMIT ?`, mmsi, limit)
	if err != nil {
		return nil, fmt.Errorf("query track: %w", err)
	}
	defer rows.Close()

	var track []PositionRow
	for rows.Next() {
		var r PositionRow
		var avail uint8
		err := rows.Scan(&r.MMSI, &r.MessageType, &r.ReceivedAt, &r.RawLon, &r.RawLat,
			&r.Longitude, &r.Latitude, &avail, &r.SOG, &r.COG, &r.Heading, &r.NavStatus,
			&r.Channel, &r.RawSentence)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Available = avail != 0
		track = append(track, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return track, nil
}
