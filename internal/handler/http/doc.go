// Package http implements the HTTP transport layer of the settings server.
//
// It exposes route wiring, request handlers and middleware for the REST API:
//
//	GET    /api/settings/{key}?context=C   resolve a setting
//	PUT    /api/settings/{key}?context=C   store an override, body {"value": ...}
//	DELETE /api/settings/{key}?context=C   forget an override
//	DELETE /api/settings                   flush every writable handler
//	GET    /api/handlers                   configured handler chain
//	GET    /api/version                    server version
//
// PUT and DELETE routes require a JWT bearer token when the server has a
// sign key configured. Request tracing, access logging, response compression
// and request timeouts are also handled here before requests reach the
// service layer.
package http
