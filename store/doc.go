// Package store defines project persistence for drilldown analyses.
//
// A Project is the durable form of one analysis: the node and edge snapshot
// of the causal graph, the full conversation transcript, the current phase
// and any generated report or slide artifacts. Backends implement the
// ProjectStore interface; the session layer only requires the narrower
// Saver interface, which it calls after every completed turn.
//
// # Backends
//
//   - store/memory — in-process map, the default for tests and ephemeral use
//   - store/sqlite — single-file embedded database
//   - store/postgres — pgx connection pool, JSONB columns
//   - store/redis — key/value with optional TTL, for shared short-lived state
//
// # Basic Usage
//
//	st := memory.NewProjectStore()
//
//	project := &store.Project{
//		ID:   uuid.NewString(),
//		Name: "checkout outage",
//	}
//	if err := st.Save(ctx, project); err != nil {
//		return err
//	}
//
//	loaded, err := st.Load(ctx, project.ID)
//	if errors.Is(err, store.ErrProjectNotFound) {
//		// first run, start fresh
//	}
//
// All backends treat Save as an upsert keyed on Project.ID and preserve
// CreatedAt across overwrites.
package store
