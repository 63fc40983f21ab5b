// Package observability builds the service logger.
//
// Every component receives a *zap.Logger through its constructor and logs with
// typed fields; request-scoped lines carry the request_id assigned by the router.
package observability
