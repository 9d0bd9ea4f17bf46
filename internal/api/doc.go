// Package api exposes the billing service over HTTP.
//
// Routes:
//
//	GET  /plans          normalized list of purchasable plans
//	POST /subscription   create a subscription and return a client secret
//	GET  /health/live    liveness probe
//	GET  /health/ready   readiness probe
//
// Internal error detail stays in the logs; clients only see the short
// messages defined in errors.go.
package api
