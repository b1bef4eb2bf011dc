// Package http implements the data-plane HTTP transport for vaulty:
// four routes under a single listener for listing, retrieving, inserting,
// and deleting secrets, each guarded by the VAULTY access-key/secret-
// access-key authorization scheme. Logging, tracing, compression, and
// method-hiding concerns are all handled at this layer before requests
// reach the secret service.
package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sivanov/vaulty/models"
)

// Init constructs and returns a fully configured [chi.Mux] router that
// serves the four data-plane secret routes.
//
// # Global middleware
//
// Every request passes through the following middleware chain in order:
//   - [middleware.Recoverer] — catches panics in handlers, logs the stack
//     trace, and returns HTTP 500 to the client so the server stays alive.
//   - [Handler.withTraceID] — resolves or generates a trace ID and stores
//     an enriched logger in the request context for structured tracing.
//   - withLogging — emits a structured access-log entry after each request.
//   - withGZip — transparently decompresses gzip-encoded request bodies and
//     compresses response bodies for clients that advertise gzip support.
//   - [Handler.authorize] — evaluates the VAULTY authorization header
//     against the permission each route requires.
//
// # Routes
//
//	GET    /                       — admin WebSocket upgrade
//	GET    /{vault}                — list secret names (requires ListSecrets)
//	GET    /{vault}/{secret_name}  — retrieve plaintext (requires DecryptSecrets)
//	POST   /{vault}/{secret_name}  — insert or overwrite (requires CreateSecrets)
//	PUT    /{vault}/{secret_name}  — insert or overwrite (requires CreateSecrets)
//	DELETE /{vault}/{secret_name}  — delete (requires DeleteSecrets)
//
// # Method-not-allowed behaviour
//
// [CheckHTTPMethod] is registered as the MethodNotAllowed handler. It
// overrides chi's default HTTP 405 response and returns HTTP 404 instead,
// preventing callers from discovering which HTTP methods are supported on
// a given route through error-code enumeration.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, withLogging, withGZip)

	router.Get("/", h.admin.ServeHTTP)

	router.With(h.authorize(permissionListSecrets)).Get("/{vault}", h.listSecrets)
	router.With(h.authorize(permissionDecryptSecrets)).Get("/{vault}/{secret_name}", h.getSecret)
	router.With(h.authorize(permissionCreateSecrets)).Post("/{vault}/{secret_name}", h.upsertSecret)
	router.With(h.authorize(permissionCreateSecrets)).Put("/{vault}/{secret_name}", h.upsertSecret)
	router.With(h.authorize(permissionDeleteSecrets)).Delete("/{vault}/{secret_name}", h.deleteSecret)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
