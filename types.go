package plistream

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate dict keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore (last value wins), Warn, or Error.
}

// ParseOpt bundles parsing options. Entry points take it variadically; the
// last one wins.
type ParseOpt struct {
	// WithPlaylists materializes the top-level "Playlists" entry. When false
	// (the default) that subtree is consumed but elided from the result.
	WithPlaylists bool
	Strictness    Strictness
	MaxDepth      int   // Maximum dict/array nesting; 0 means unlimited.
	MaxBytes      int64 // Maximum consumed input; 0 means unlimited.
	// Tracer receives every handler transition. Nil means no tracing.
	Tracer Tracer
	// IssueSink receives non-fatal issues such as duplicate keys in Warn mode.
	IssueSink func(Issue)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
