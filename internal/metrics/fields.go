package metrics

// Metric attribute keys.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrSource   = "source"
	AttrReason   = "reason"
	AttrResult   = "result"
)

// Reasons recorded when the home payload is served degraded.
const (
	ReasonFallback = "fallback"
	ReasonPartial  = "partial"
)
