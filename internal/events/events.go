// Package events publishes domain events to NATS for other systems to
// consume. Nothing in this service waits on their delivery.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects.
const (
	SubjectListingCreated   = "foodshare.listing.created"
	SubjectRequestCreated   = "foodshare.request.created"
	SubjectRequestDelivered = "foodshare.request.delivered"
)

// Publisher sends an event payload on a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close()
}

// New connects to NATS at url. An empty url yields a publisher that drops
// everything.
func New(url string) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	conn, err := nats.Connect(url,
		nats.Name("foodshare"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// NATSPublisher publishes JSON-encoded payloads on a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	p.conn.Drain()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close()                                     {}

// Message is an event captured by a Recorder.
type Message struct {
	Subject string
	Data    []byte
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Publish(_ context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", subject, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Subject: subject, Data: data})
	return nil
}

func (r *Recorder) Close() {}

// Messages returns a copy of the recorded events in publish order.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Subjects returns the recorded subjects in publish order.
func (r *Recorder) Subjects() []string {
	var subjects []string
	for _, m := range r.Messages() {
		subjects = append(subjects, m.Subject)
	}
	return subjects
}
