// Package profile starts optional runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	randl --pprof-mode=cpu apply fighter.kdl fighter.yaml
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op.
// Profiles are written below the cache directory unless a path is given.
package profile
