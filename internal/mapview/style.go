package mapview

// StyleConfig holds the presentation parameters and the initial/limit values of the
// view transform. Zero values fall back to DefaultStyle when passed through
// WithDefaults, so a partially filled config behaves like the defaults overlaid
// with the fields that were set.
type StyleConfig struct {
	Scale    float64 `mapstructure:"scale"`
	MaxScale float64 `mapstructure:"max_scale"`
	MinScale float64 `mapstructure:"min_scale"`
	// Factor is a friction coefficient kept for a future easing law; no gesture
	// reads it.
	Factor      float64 `mapstructure:"factor"`
	OffsetX     float64 `mapstructure:"offset_x"`
	OffsetY     float64 `mapstructure:"offset_y"`
	DefaultFill string  `mapstructure:"default_fill"`
	HoverFill   string  `mapstructure:"hover_fill"`
	StrokeColor string  `mapstructure:"stroke_color"`
	StrokeWidth float64 `mapstructure:"stroke_width"`
	Padding     float64 `mapstructure:"padding"`
}

// DefaultStyle is the built-in configuration.
var DefaultStyle = StyleConfig{
	Scale:       1,
	MaxScale:    1000,
	MinScale:    0.01,
	Factor:      0.1,
	OffsetX:     0,
	OffsetY:     0,
	DefaultFill: "#e0f3ff",
	HoverFill:   "#409eff",
	StrokeColor: "#fff",
	StrokeWidth: 1,
	Padding:     50,
}

// WithDefaults fills every zero field from DefaultStyle.
func (c StyleConfig) WithDefaults() StyleConfig {
	d := DefaultStyle
	if c.Scale == 0 {
		c.Scale = d.Scale
	}
	if c.MaxScale == 0 {
		c.MaxScale = d.MaxScale
	}
	if c.MinScale == 0 {
		c.MinScale = d.MinScale
	}
	if c.Factor == 0 {
		c.Factor = d.Factor
	}
	if c.DefaultFill == "" {
		c.DefaultFill = d.DefaultFill
	}
	if c.HoverFill == "" {
		c.HoverFill = d.HoverFill
	}
	if c.StrokeColor == "" {
		c.StrokeColor = d.StrokeColor
	}
	if c.StrokeWidth == 0 {
		c.StrokeWidth = d.StrokeWidth
	}
	if c.Padding == 0 {
		c.Padding = d.Padding
	}
	if c.MinScale > c.MaxScale {
		c.MinScale, c.MaxScale = c.MaxScale, c.MinScale
	}
	return c
}

// seed is the transform used when the dataset cannot be fitted.
func (c StyleConfig) seed() ViewTransform {
	t := ViewTransform{
		Scale:    c.Scale,
		OffsetX:  c.OffsetX,
		OffsetY:  c.OffsetY,
		MinScale: c.MinScale,
		MaxScale: c.MaxScale,
		Factor:   c.Factor,
	}
	t.Scale = clamp(t.Scale, t.MinScale, t.MaxScale)
	return t
}
