// Package log provides the logging abstraction used by the analysis engine.
//
// It defines a small Logger interface, a default stderr implementation, a
// no-op implementation for silencing components, and an adapter for
// kataras/golog for applications that already use it.
//
// Components accept a Logger through their options; when none is given they
// fall back to the package-level default, which can be replaced globally:
//
//	log.SetDefaultLogger(log.NewGologLogger(golog.Default))
//	log.SetLogLevel(log.LogLevelDebug)
package log
