// Package mqtt wraps the Eclipse Paho client for the return box transport.
//
// The wrapper exists for the same reason core/storage wraps minio: features
// depend on a small interface (Publisher, Handler) instead of the vendor
// types, which keeps them mockable.
//
// # Connection Model
//
// Connect is non-blocking. The paho client retries the initial connection and
// reconnects automatically; subscriptions registered via Subscribe before
// Connect are re-applied on every successful (re)connection. A broker outage
// therefore degrades the service (Publish returns ErrNotConnected) without
// taking it down.
//
// # TLS
//
// Optional TLS supports a custom CA bundle and mutual TLS via a client
// certificate/key pair. TLSInsecure disables verification for lab setups.
package mqtt
