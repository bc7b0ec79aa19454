package provider

import (
	"log/slog"
	"sync"

	"gymdesk/internal/domain/notification"
)

var _ notification.Resolver = (*Resolver)(nil)

// Factory constructs a delivery provider.
type Factory func() notification.Provider

// registry maps configuration strings to provider factories. Real
// transports (MSG91, Twilio, WhatsApp, email) register here as they land.
var registry = map[string]Factory{
	"mock": func() notification.Provider { return NewMock() },
}

// Resolver constructs the configured provider lazily, at most once, and
// hands out the same instance thereafter. Unknown provider names fall back
// to the mock provider with a warning instead of erroring, so a config typo
// cannot take notifications down.
type Resolver struct {
	name string
	once sync.Once
	p    notification.Provider
}

// NewResolver creates a resolver for the named provider.
func NewResolver(name string) *Resolver {
	return &Resolver{name: name}
}

// Provider returns the resolved provider, constructing it on first use.
func (r *Resolver) Provider() notification.Provider {
	r.once.Do(func() {
		factory, ok := registry[r.name]
		if !ok {
			slog.Warn("unknown notification provider, falling back to mock", "provider", r.name)
			factory = registry["mock"]
		}
		r.p = factory()
	})
	return r.p
}
