package common

// RequestIDHeaderName is the gRPC metadata key carrying the request id
// shared by client and server logs.
const RequestIDHeaderName = "x-request-id"

// HealthCheckMessage is the static marker returned by the health check.
const HealthCheckMessage = "API is working!"
