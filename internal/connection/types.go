package connection

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"
)

// Errors
var (
	ErrNotConnected     = errors.New("not connected")
	ErrConnectFailed    = errors.New("connection failed")
	ErrConnectionReset  = errors.New("connection reset")
	ErrAlreadyClosed    = errors.New("client closed")
	ErrTimeout          = errors.New("request timeout")
	ErrDuplicateRequest = errors.New("request already pending")
	ErrProtocol         = errors.New("protocol error")
)

// State is the connection lifecycle state, owned exclusively by the Manager.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// productRequest is the outbound request shape. Every field except ASIN is a
// fixed protocol constant expected verbatim by the push service.
type productRequest struct {
	Path           string `json:"path"`
	History        bool   `json:"history"`
	Type           string `json:"type"`
	Basic          bool   `json:"basic"`
	Compact        bool   `json:"compact"`
	DomainID       int    `json:"domainId"`
	MaxAge         int    `json:"maxAge"`
	RefreshProduct bool   `json:"refreshProduct"`
	ID             int    `json:"id"`
	Version        string `json:"version"`
	ASIN           string `json:"asin"`
}

func newProductRequest(asin string) productRequest {
	return productRequest{
		Path:     "product",
		History:  true,
		Type:     "ws",
		Basic:    true,
		Compact:  true,
		DomainID: 1,
		MaxAge:   3,
		ID:       3407,
		Version:  "20250108",
		ASIN:     asin,
	}
}

// productMessage is the inbound frame shape after decompression. Frames
// without a products list are control or keepalive traffic and are dropped.
type productMessage struct {
	Products []productEntry `json:"products"`
}

// productEntry carries one product's csv table. The table stays raw here so
// that a malformed csv still yields the ASIN; its decode failure must reach
// the waiter for that key rather than discard the whole frame.
type productEntry struct {
	ASIN string          `json:"asin"`
	CSV  json.RawMessage `json:"csv"`
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string        // Push service URL (wss://...)
	UserAgent        string        // User-Agent header for the handshake
	HandshakeTimeout time.Duration // Dial deadline
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// ManagerConfig configures the connection Manager.
type ManagerConfig struct {
	URL               string        // Push service URL
	UserAgent         string        // User-Agent header for the handshake
	RequestTimeout    time.Duration // Default per-request wait
	ReconnectInterval time.Duration // Fixed wait between reconnect attempts
	HandshakeTimeout  time.Duration // Dial deadline
	WriteTimeout      time.Duration // Write deadline for sends
	BufferSize        int           // Inbound message buffer size
	CloseTimeout      time.Duration // Bounded wait for the run loop on Close
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		URL:               DefaultURL,
		UserAgent:         DefaultUserAgent,
		RequestTimeout:    30 * time.Second,
		ReconnectInterval: 5 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		WriteTimeout:      5 * time.Second,
		BufferSize:        100,
		CloseTimeout:      5 * time.Second,
	}
}

// Defaults matching the public push endpoint.
const (
	DefaultURL       = "wss://push2.keepa.com/apps/cloud/"
	DefaultUserAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:134.0) Gecko/20100101 Firefox/134.0"
)

// Stats provides a point-in-time view of the connection.
type Stats struct {
	State           State
	PendingRequests int
}
