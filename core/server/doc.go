// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this configuration:
// the listen port and the API key checked by the auth middleware.
package server
