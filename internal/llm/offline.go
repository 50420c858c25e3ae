package llm

import (
	"context"
	"errors"
)

// OfflineBackend names the gateway used when no backend could be built.
const OfflineBackend = "offline"

type offlineGateway struct {
	reason   error
	observer Observer
}

// NewOfflineGateway returns a Gateway whose every call fails with a transport
// error wrapping reason. Analyses served through it always take the fallback
// path.
func NewOfflineGateway(reason error, observer Observer) Gateway {
	if reason == nil {
		reason = errors.New("no generation backend configured")
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &offlineGateway{reason: reason, observer: observer}
}

func (g *offlineGateway) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	g.observer.OnCallComplete(CallEvent{Backend: OfflineBackend, ErrorKind: KindTransport})
	return nil, newGatewayError(OfflineBackend, KindTransport, g.reason)
}

func (g *offlineGateway) Available(context.Context) bool { return false }

func (g *offlineGateway) Name() string { return OfflineBackend }
