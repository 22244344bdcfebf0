package render

// RenderOptions describe per-invocation data renderers and the engine can
// use to customise output without touching the page model.
type RenderOptions struct {
	// Variables adds or overrides scalar substitutions. Entries here win over
	// the defaults derived from the data document for the same key.
	Variables map[string]string
}
