// Package handler implements the gateway's HTTP endpoints: POST /inference,
// GET /status and GET /health. It validates incoming requests, applies the
// configured defaults and maps the routing error taxonomy onto HTTP statuses.
package handler
