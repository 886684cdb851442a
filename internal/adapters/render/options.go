package render

// Image formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 400
)

// Option configures a render call.
type Option func(*config)

type config struct {
	width  int
	height int
	format string
}

// WithSize sets the minimum canvas size. Bar charts widen to fit their bars.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithFormat selects png or svg output.
func WithFormat(format string) Option {
	return func(c *config) {
		c.format = format
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{width: DefaultWidth, height: DefaultHeight, format: FormatPNG}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
