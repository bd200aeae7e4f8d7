// Package controller holds the HTTP middlewares shared by the API server:
// CORS handling, request ids with access logging, and the pprof mux.
package controller
