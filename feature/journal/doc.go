// Package journal implements the journal sync feature.
//
// It loads journal metadata from the NLM Medline list and the NIH PMC type A
// CSV into the journals table, resolving each record against the stored
// journals with the core/reconcile engine.
//
// # Components
//
//   - Repository: GORM gateway over the journals table.
//   - Service: runs syncs, deduplicates overlapping runs and keeps the last summary.
//   - Handler: exposes the sync over HTTP.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /journals/sync : Run a sync ({"medline": [...], "pmc": [...], "dry_run": false}).
//   - GET /journals/sync/last : Summary of the last completed sync.
//
// Local locators sent over HTTP must resolve inside the configured
// sync.base_dir; without one only s3:// locators are accepted.
package journal
