// Package reconcile resolves incoming journal records against the journals
// already stored in a repository and keeps the repository in sync.
//
// # Architecture
//
// The package consists of two components:
//
//  1. MatchIndex: an in-memory lookup of journal ids by ISSN, NLM title
//     abbreviation (NLMTA) and name. It is loaded once per run from a
//     repository snapshot and extended with every journal created during the run.
//
//  2. Engine: consumes a Source, asks the MatchIndex for each record and
//     decides whether to create, update, or skip, keeping run statistics.
//
// # Matching
//
// Each key that points at a journal adds one to that journal's score. A
// journal needs a score of at least two (MinimumQualifyingScore) to match, so
// a single shared ISSN or an identical title is never enough. Among qualifying
// journals the highest score wins and ties go to the smallest id.
//
// Every journal handed out as a match, and every journal created during the
// run, is quarantined: a later record resolving only to quarantined journals
// is reported as a duplicate instead of updating the same journal twice.
//
// # Update policy
//
// See ApplyUpdate. PMC participation follows the source when the source knows
// participation, ISSNs are replaced (not merged) when they differ, and the
// NLMTA is only ever filled in once.
//
// # Usage Example
//
//	engine, err := reconcile.Open(ctx, repo, logger, reconcile.Options{DryRun: false})
//	if err != nil {
//	    return err
//	}
//	if err := engine.Run(ctx, source); err != nil {
//	    return err
//	}
//	summary := engine.Close()
package reconcile
