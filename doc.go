// Package ideagen ingests YouTube channel catalogs into a per-user store.
//
// A user registers channel names; each ingestion run resolves every name to
// its upstream channel ID, enumerates the channel's videos, fetches details
// and top-level comments, and reconciles the results against storage so
// nothing is duplicated and partial upstream failures do not corrupt state.
//
// # Quick Start
//
// Ingest everything registered by a user:
//
//	catalog, err := youtube.NewClient(ctx, apiKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := storage.NewMemoryStore()
//	svc := ingest.New(catalog, store)
//	videos, err := svc.IngestAll(ctx, userID)
//
// Refresh counters for already-stored videos:
//
//	err = svc.RefreshStatistics(ctx, userID)
//
// # Error Handling
//
// Precondition failures are sentinel errors:
//
//	if errors.Is(err, ideagen.ErrNoChannels) {
//		fmt.Println("register a channel first")
//	}
//
// Upstream failures carry a kind for continue/abort decisions:
//
//	if youtube.Kind(err) == youtube.KindQuotaExceeded {
//		// stop for the day
//	}
//
// # Sub-packages
//
//   - youtube: upstream catalog client (resolution, enumeration, details, comments)
//   - storage: data model, in-memory store, Postgres store
//   - ingest: ingestion orchestrator and statistics refresher
//   - config: configuration management
//   - retry: exponential backoff retry logic
package ideagen
