// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation protecting the sync endpoints.
//   - RayID: tags every request with a unique id, stored in the context
//     locals and echoed in the response headers for tracing.
package middleware
