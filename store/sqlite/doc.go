// Package sqlite provides SQLite-backed project persistence for drilldown.
//
// The backend keeps every analysis in a single database file, which makes it
// the natural choice for desktop and CLI deployments: no server process,
// ACID transactions, and the whole project history travels as one file.
// Graph snapshots and conversation transcripts are stored as JSON text
// columns, so the schema stays stable as node and message fields evolve.
//
// # Basic Usage
//
//	import "github.com/drillhq/drilldown/store/sqlite"
//
//	st, err := sqlite.NewProjectStore(sqlite.Options{
//		Path:      "./analyses.db",
//		TableName: "projects", // optional, default "projects"
//	})
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
//	err = st.Save(ctx, project)
//	loaded, err := st.Load(ctx, project.ID)
//
// Save is an upsert keyed on the project ID; created_at is written once and
// survives later overwrites. Use ":memory:" as the path for throwaway
// stores in tests.
package sqlite
