// Package codec implements the wire-level primitives shared by the push
// connection: raw deflate framing, Keepa minute-offset timestamps, and
// handshake token generation.
package codec
