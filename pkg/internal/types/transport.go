package types

import "context"

// Transport is the narrow contract the acquisition engine depends on. It
// abstracts whatever device link delivers the byte stream.
type Transport interface {
	// IsConnected reports whether the link is up.
	IsConnected() bool

	// SendControlToken writes a control token to the device.
	SendControlToken(ctx context.Context, token string) error

	// BeginStreaming starts delivery; onChunk is invoked in arrival order
	// with non-empty chunks until EndStreaming is called.
	BeginStreaming(ctx context.Context, onChunk func([]byte)) error

	// EndStreaming stops delivery. No onChunk call starts after it returns.
	EndStreaming(ctx context.Context) error
}

// TransportFaultNotifier is implemented by transports that can report an
// asynchronous link failure while streaming.
type TransportFaultNotifier interface {
	Faults() <-chan error
}
