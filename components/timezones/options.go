package timezones

// EmptySearchMode decides what an empty query returns.
type EmptySearchMode string

const (
	// EmptySearchNone returns nothing for an empty query.
	EmptySearchNone EmptySearchMode = "none"
	// EmptySearchTop returns the first zones up to the limit.
	EmptySearchTop EmptySearchMode = "top"
)

// Options configures Search and the search handler.
type Options struct {
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode

	// Zones replaces the embedded list when not nil.
	Zones []string
}

// Option mutates Options.
type Option func(*Options)

// NewOptions applies opts over the defaults and repairs invalid values.
func NewOptions(opts ...Option) Options {
	o := Options{
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchNone,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.SearchParam == "" {
		o.SearchParam = "q"
	}
	if o.LimitParam == "" {
		o.LimitParam = "limit"
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 50
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = 200
	}
	if o.EmptySearchMode == "" {
		o.EmptySearchMode = EmptySearchNone
	}
	return o
}

// WithLimits sets the default and maximum result counts.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(o *Options) {
		o.DefaultLimit = defaultLimit
		o.MaxLimit = maxLimit
	}
}

// WithEmptySearchMode sets what an empty query returns.
func WithEmptySearchMode(mode EmptySearchMode) Option {
	return func(o *Options) { o.EmptySearchMode = mode }
}

// WithZones searches zones instead of the embedded list.
func WithZones(zones []string) Option {
	return func(o *Options) {
		if zones != nil {
			o.Zones = append([]string(nil), zones...)
		}
	}
}

func (o Options) clamp(limit int) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		limit = o.DefaultLimit
	}
	if limit > o.MaxLimit {
		return o.MaxLimit
	}
	return limit
}
