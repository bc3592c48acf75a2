package session

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/vinayprograms/agentkit/logging"
)

// NATSNotifier publishes phase transition events to a NATS subject so
// downstream reporting and resumption tooling can react without polling
// the database.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
	logger  *logging.Logger
}

// NewNATSNotifier connects to a NATS server. Subject defaults to
// "sessions.phase" when empty.
func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	if subject == "" {
		subject = "sessions.phase"
	}
	return &NATSNotifier{
		conn:    conn,
		subject: subject,
		logger:  logging.New().WithComponent("notify"),
	}, nil
}

// PhaseChanged implements Notifier. Publish failures are logged, never
// propagated: notification is best effort and must not undo a committed
// transition.
func (n *NATSNotifier) PhaseChanged(evt PhaseEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		n.logger.Error("marshal phase event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		n.logger.Warn("publish phase event", map[string]interface{}{
			"subject": n.subject,
			"error":   err.Error(),
		})
	}
}

// Close drains the connection.
func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Drain()
	}
}
