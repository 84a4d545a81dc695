package natsgath

import (
	"github.com/nats-io/nats.go"
)

// New creates a NATS gatherer that streams harvest messages to the
// given subject.
func New(nc *nats.Conn, runUuid string, subject string) *natsGatherer {
	return &natsGatherer{
		nc:      nc,
		subject: subject,
		runUuid: runUuid,
	}
}
