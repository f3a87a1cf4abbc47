package today

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/structhr/structhr/internal/config"
	"github.com/structhr/structhr/internal/logfields"
)

// NATSPublisher broadcasts today-change notifications on a NATS subject so
// external collaborators can refresh their own views of "today". The
// message carries no payload; subscribers are expected to re-read the value.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSPublisher connects to NATS and prepares the JetStream context.
func NewNATSPublisher(cfg config.NATSConfig) (*NATSPublisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("nats publishing is disabled")
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	slog.Info("NATS publisher initialized", logfields.Subject(cfg.Subject), slog.String("url", cfg.URL))

	return &NATSPublisher{
		conn:    conn,
		js:      js,
		subject: cfg.Subject,
	}, nil
}

// Publish broadcasts a change notification. Failures are returned but the
// caller treats them as non-fatal: the persisted value is already written.
func (p *NATSPublisher) Publish(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.js.Publish(ctx, p.subject, nil); err != nil {
		return fmt.Errorf("failed to publish change notification: %w", err)
	}

	slog.Debug("Published today change notification", logfields.Subject(p.subject))
	return nil
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
