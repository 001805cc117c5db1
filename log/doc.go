// Package log provides a structured logger built on [log/slog] with an
// additional Trace level.
//
// Loggers are configured with functional options when they are created:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("document loaded", slog.Int("entries", 3))
//
// The zero value [Logger] discards everything, so libraries may accept a
// Logger through their options without requiring callers to provide one.
//
// The package also keeps a process-wide default logger used by the
// package-level functions ([Info], [DebugContext], and so on). The command
// line configures it once with [Config] after parsing flags.
package log
