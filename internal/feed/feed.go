// Package feed publishes decoded AIS messages to NATS, one subject per
// message type, so downstream consumers can subscribe to exactly the
// traffic they care about.
package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"ais_relay/internal/ais"
)

// Config holds the NATS connection settings.
type Config struct {
	// URL is the NATS server URL, e.g. nats://localhost:4222.
	URL string
	// SubjectPrefix is prepended to the message type, default "ais.msg".
	SubjectPrefix string
}

// DefaultConfig returns the stock feed settings.
func DefaultConfig() Config {
	return Config{URL: nats.DefaultURL, SubjectPrefix: "ais.msg"}
}

// Envelope is the published JSON payload: the raw sentence alongside its
// decoded form.
type Envelope struct {
	Sentence   string      `json:"sentence"`
	Channel    string      `json:"channel,omitempty"`
	ReceivedAt time.Time   `json:"received_at"`
	Message    ais.Message `json:"message"`
}

// Publisher publishes decoded messages to NATS.
type Publisher struct {
	nc     *nats.Conn
	prefix string
}

// Connect opens the NATS connection. The connection reconnects
// indefinitely; messages published while disconnected are buffered by the
// client.
func Connect(cfg Config) (*Publisher, error) {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = DefaultConfig().SubjectPrefix
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name("ais_relay"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{nc: nc, prefix: cfg.SubjectPrefix}, nil
}

// Publish sends one decoded message to the subject for its type.
func (p *Publisher) Publish(raw, channel string, msg ais.Message, at time.Time) error {
	data, err := json.Marshal(Envelope{
		Sentence:   raw,
		Channel:    channel,
		ReceivedAt: at,
		Message:    msg,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := p.nc.Publish(subject(p.prefix, msg.Type()), data); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close drains and closes the connection, flushing buffered messages.
func (p *Publisher) Close() error {
	return p.nc.Drain()
}

// subject is "<prefix>.<type>", e.g. ais.msg.5.
func subject(prefix string, msgType uint8) string {
	return fmt.Sprintf("%s.%d", prefix, msgType)
}
