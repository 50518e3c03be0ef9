// Package connection maintains the single long-lived WebSocket connection
// to the Keepa push service.
//
// The Manager:
//   - Owns the transport client and exactly one background run loop
//   - Multiplexes concurrent product requests over the one connection,
//     matching responses to callers by ASIN
//   - Reconnects on connection loss, cancelling all requests in flight
//   - Guarantees every outstanding request resolves exactly once
package connection
