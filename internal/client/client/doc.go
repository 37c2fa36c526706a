// Package client talks to the gophauth credential service over gRPC.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI. GRPCClient
// implements it on top of rpc.CredentialServiceClient: every call carries
// an x-request-id header (generated when the caller did not set one) and is
// bounded by the configured timeout.
//
// # Error Handling
//
// gRPC status codes are mapped to sentinel errors that callers match with
// errors.Is: ErrUnauthorized, ErrUnavailable, ErrAlreadyExists and
// ErrInvalidInput. Anything else is wrapped as "rpc error: ...".
package client
