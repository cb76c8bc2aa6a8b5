package transcription

import (
	"context"

	"github.com/kbukum/oasisdoc/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// AsRequestResponse exposes p as a RequestResponse for middleware chains.
func AsRequestResponse(p Provider) provider.RequestResponse[Request, *Response] {
	return &requestResponse{p: p}
}

type requestResponse struct {
	p Provider
}

func (r *requestResponse) Name() string                         { return r.p.Name() }
func (r *requestResponse) IsAvailable(ctx context.Context) bool { return r.p.IsAvailable(ctx) }

func (r *requestResponse) Execute(ctx context.Context, req Request) (*Response, error) {
	return r.p.Transcribe(ctx, req)
}

// FromRequestResponse turns a (possibly wrapped) RequestResponse back into a
// Provider.
func FromRequestResponse(rr provider.RequestResponse[Request, *Response]) Provider {
	return &fromRequestResponse{rr: rr}
}

type fromRequestResponse struct {
	rr provider.RequestResponse[Request, *Response]
}

func (f *fromRequestResponse) Name() string                         { return f.rr.Name() }
func (f *fromRequestResponse) IsAvailable(ctx context.Context) bool { return f.rr.IsAvailable(ctx) }

func (f *fromRequestResponse) Transcribe(ctx context.Context, req Request) (*Response, error) {
	return f.rr.Execute(ctx, req)
}
