// Package redis provides Redis-backed project persistence for drilldown.
//
// Each project is stored as one JSON value under a prefixed key, with a
// set indexing all project IDs. This backend suits shared short-lived
// deployments: several session workers can read and write the same project
// catalogue, and an optional TTL lets abandoned analyses expire on their
// own instead of accumulating.
//
// # Basic Usage
//
//	import "github.com/drillhq/drilldown/store/redis"
//
//	st := redis.NewProjectStore(redis.Options{
//		Addr:   "localhost:6379",
//		Prefix: "drilldown:",   // optional key prefix
//		TTL:    24 * time.Hour, // optional expiry
//	})
//	defer st.Close()
//
// Keys are laid out as:
//
//	drilldown:project:<id>  — the project JSON
//	drilldown:projects      — set of all project IDs
//
// List skips index entries whose value has already expired, so a stale
// index never surfaces phantom projects.
package redis
