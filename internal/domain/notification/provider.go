package notification

import "context"

// Provider defines the contract for a notification delivery backend.
// Implementations live in infra/provider (mock today; real SMS/WhatsApp/email
// providers plug in behind the same interface).
//
// Providers are fail-safe: delivery problems are reported through the
// returned Result (Success=false, Status=failed, Error populated), never
// through a panic or an error that escapes the provider boundary.
type Provider interface {
	// Send delivers one message to one phone number.
	Send(ctx context.Context, phone, message string) Result

	// SendBulk delivers the same message to every phone number, in input
	// order. Providers without a native batch API should delegate to
	// SendSequential.
	SendBulk(ctx context.Context, phones []string, message string) BulkResult

	// Name identifies the provider in logs and result metadata.
	Name() string
}

// Resolver yields the provider the service should use for a send.
// Implementations construct the provider lazily, at most once, from
// configuration (see infra/provider.Resolver).
type Resolver interface {
	Provider() Provider
}

// SendSequential is the default bulk strategy: a strictly sequential loop
// over Send, aggregating counts. A slow send blocks subsequent ones; there
// is no parallelism, timeout, or cancellation beyond ctx.
func SendSequential(ctx context.Context, p Provider, phones []string, message string) BulkResult {
	results := make([]Result, 0, len(phones))
	for _, phone := range phones {
		results = append(results, p.Send(ctx, phone, message))
	}
	return Aggregate(results)
}
