// AIS relay daemon.
//
// Connects to an upstream receiver (or reads stdin), decodes every
// sentence once, re-serves the raw stream to TCP clients, and fans the
// decoded messages out to the configured sinks.
//
// Usage:
//
//	ais_relay [options]
//
// Options:
//
//	-upstream HOST:PORT    Upstream receiver; empty reads stdin
//	-listen-port N         Relay listen port (default: 8090, env: RELAY_PORT)
//	-max-clients N         Connection ceiling (default: 1000, env: RELAY_MAX_CLIENTS)
//	-clickhouse            Enable the ClickHouse position-report sink
//	-ch-host/-ch-port/...  ClickHouse connection (env: CLICKHOUSE_*)
//	-postgres              Enable the PostgreSQL vessel-state sink
//	-pg-host/-pg-port/...  PostgreSQL connection (env: POSTGRES_*)
//	-nats URL              Publish decoded messages to NATS (subject ais.msg.<type>)
//	-archive PATH          Append every decoded sentence to a SQLite archive
//	-create-schemas        Create database schemas on startup
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"ais_relay/internal/ais"
	"ais_relay/internal/feed"
	"ais_relay/internal/relay"
	"ais_relay/internal/sentence"
	"ais_relay/internal/storage"
)

func main() {
	upstream := flag.String("upstream", envOrDefault("RELAY_UPSTREAM", ""), "Upstream receiver host:port (default: stdin)")
	listenPort := flag.Int("listen-port", envOrDefaultInt("RELAY_PORT", 8090), "Relay listen port")
	maxClients := flag.Int("max-clients", envOrDefaultInt("RELAY_MAX_CLIENTS", 1000), "Connection ceiling")

	chEnabled := flag.Bool("clickhouse", false, "Enable the ClickHouse position-report sink")
	chHost := flag.String("ch-host", envOrDefault("CLICKHOUSE_HOST", "localhost"), "ClickHouse host")
	chPort := flag.Int("ch-port", envOrDefaultInt("CLICKHOUSE_PORT", 9000), "ClickHouse port")
	chDB := flag.String("ch-database", envOrDefault("CLICKHOUSE_DATABASE", "ais"), "ClickHouse database")
	chUser := flag.String("ch-user", envOrDefault("CLICKHOUSE_USER", "default"), "ClickHouse user")
	chPassword := flag.String("ch-password", envOrDefault("CLICKHOUSE_PASSWORD", ""), "ClickHouse password")

	pgEnabled := flag.Bool("postgres", false, "Enable the PostgreSQL vessel-state sink")
	pgHost := flag.String("pg-host", envOrDefault("POSTGRES_HOST", "localhost"), "PostgreSQL host")
	pgPort := flag.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", 5432), "PostgreSQL port")
	pgUser := flag.String("pg-user", envOrDefault("POSTGRES_USER", "ais"), "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOrDefault("POSTGRES_PASSWORD", "ais"), "PostgreSQL password")
	pgDB := flag.String("pg-database", envOrDefault("POSTGRES_DATABASE", "ais_state"), "PostgreSQL database")

	natsURL := flag.String("nats", envOrDefault("NATS_URL", ""), "NATS URL for the decoded-message feed")
	archivePath := flag.String("archive", "", "SQLite archive path")
	createSchemas := flag.Bool("create-schemas", false, "Create database schemas on startup")

	flag.Parse()

	ctx := context.Background()

	// Sinks.
	var ch *storage.ClickHouseDB
	if *chEnabled {
		var err error
		ch, err = storage.OpenClickHouse(ctx, storage.ClickHouseConfig{
			Host: *chHost, Port: *chPort, Database: *chDB, User: *chUser, Password: *chPassword,
		})
		if err != nil {
			log.Fatalf("clickhouse: %v", err)
		}
		defer ch.Close()
		if *createSchemas {
			if err := ch.CreateSchema(ctx); err != nil {
				log.Fatalf("clickhouse schema: %v", err)
			}
		}
	}

	var pg *storage.PostgresDB
	if *pgEnabled {
		var err error
		pg, err = storage.OpenPostgres(ctx, storage.PostgresConfig{
			Host: *pgHost, Port: *pgPort, Database: *pgDB, User: *pgUser, Password: *pgPassword,
		})
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pg.Close()
		if *createSchemas {
			if err := pg.CreateSchema(ctx); err != nil {
				log.Fatalf("postgres schema: %v", err)
			}
		}
	}

	var pub *feed.Publisher
	if *natsURL != "" {
		var err error
		pub, err = feed.Connect(feed.Config{URL: *natsURL, SubjectPrefix: "ais.msg"})
		if err != nil {
			log.Fatalf("nats: %v", err)
		}
		defer pub.Close()
	}

	var archive *storage.ArchiveDB
	if *archivePath != "" {
		var err error
		archive, err = storage.OpenArchive(*archivePath)
		if err != nil {
			log.Fatalf("archive: %v", err)
		}
		defer archive.Close()
	}

	// Relay listener.
	server, err := relay.Listen(relay.Config{Port: *listenPort, MaxClients: *maxClients})
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer server.Close()
	log.Printf("relaying on %s (max %d clients)", server.Addr(), *maxClients)

	positions := newPositionBatcher(ctx, ch)
	defer positions.flush()

	handle := func(snt *sentence.Sentence, msg ais.Message) {
		now := time.Now()
		if ch != nil {
			if row, ok := storage.PositionRowFromMessage(msg, now); ok {
				row.Channel = snt.Channel
				row.RawSentence = snt.String()
				positions.add(row)
			}
		}
		if pg != nil {
			if err := pg.Apply(ctx, msg, now); err != nil {
				log.Printf("postgres apply: %v", err)
			}
		}
		if pub != nil {
			if err := pub.Publish(snt.String(), snt.Channel, msg, now); err != nil {
				log.Printf("nats publish: %v", err)
			}
		}
		if archive != nil {
			if _, err := archive.Insert(snt.String(), snt.Channel, msg, now); err != nil {
				log.Printf("archive insert: %v", err)
			}
		}
	}

	// Upstream loop: reconnect forever when a remote source drops.
	for {
		r, name, err := openUpstream(*upstream)
		if err != nil {
			log.Printf("upstream %s: %v, retrying", name, err)
			time.Sleep(5 * time.Second)
			continue
		}
		log.Printf("reading from %s", name)

		stats, err := server.Pump(r, handle)
		positions.flush()
		log.Printf("upstream closed: received=%d relayed=%d decoded=%d malformed=%d err=%v",
			stats.Received, stats.Relayed, stats.Decoded, stats.Malformed, err)
		if c, ok := r.(io.Closer); ok {
			c.Close()
		}
		if *upstream == "" {
			return // stdin has no reconnect
		}
		time.Sleep(time.Second)
	}
}

// positionBatcher accumulates ClickHouse rows and flushes them in blocks.
type positionBatcher struct {
	ctx  context.Context
	ch   *storage.ClickHouseDB
	rows []storage.PositionRow
	last time.Time
}

func newPositionBatcher(ctx context.Context, ch *storage.ClickHouseDB) *positionBatcher {
	return &positionBatcher{ctx: ctx, ch: ch, last: time.Now()}
}

func (b *positionBatcher) add(row storage.PositionRow) {
	if b.ch == nil {
		return
	}
	b.rows = append(b.rows, row)
	if len(b.rows) >= 500 || time.Since(b.last) > 5*time.Second {
		b.flush()
	}
}

func (b *positionBatcher) flush() {
	if b.ch == nil || len(b.rows) == 0 {
		return
	}
	if err := b.ch.InsertPositions(b.ctx, b.rows); err != nil {
		log.Printf("clickhouse insert: %v", err)
	}
	b.rows = b.rows[:0]
	b.last = time.Now()
}

// openUpstream returns the sentence source: a TCP connection when addr is
// set, stdin otherwise.
func openUpstream(addr string) (io.Reader, string, error) {
	if addr == "" {
		return os.Stdin, "stdin", nil
	}
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return nil, addr, err
	}
	return conn, addr, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
