package sink

import (
	"context"

	"beacon/internal/config"
	"beacon/internal/notify"
)

// Sink receives a resolved notification after the center has persisted it.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, uid string, record notify.Record) error
}

// FromConfig assembles the configured sinks. The result may be empty; the
// center treats an empty set as display-only operation.
func FromConfig(cfg *config.Config) []Sink {
	if cfg == nil {
		return nil
	}
	var sinks []Sink
	if cfg.Desktop.Enabled {
		if desktop := NewDesktop(); desktop != nil {
			sinks = append(sinks, desktop)
		}
	}
	if ntfy := NewNtfy(cfg); ntfy != nil {
		sinks = append(sinks, ntfy)
	}
	return sinks
}
