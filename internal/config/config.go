package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"polymap/internal/mapview"
)

// Config is the merged result of defaults, polymap.yaml, POLYMAP_* environment
// variables and command-line flags, in increasing priority.
type Config struct {
	Style mapview.StyleConfig `mapstructure:",squash"`

	FallbackOnDegenerate bool          `mapstructure:"fallback_on_degenerate"`
	PNGWidth             int           `mapstructure:"png_width"`
	PNGHeight            int           `mapstructure:"png_height"`
	FrameInterval        time.Duration `mapstructure:"frame_interval"`
	// TUIPadding replaces Style.Padding for the terminal map, whose units are
	// braille dots.
	TUIPadding float64 `mapstructure:"tui_padding"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"padding":    "padding",
	"fallback":   "fallback_on_degenerate",
	"png-width":  "png_width",
	"png-height": "png_height",
	"log-level":  "log_level",
	"log-format": "log_format",
	"log-file":   "log_file",
}

// Flags registers the configurable flags on fs.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./polymap.yaml)")
	fs.Float64("padding", mapview.DefaultStyle.Padding, "fit padding in surface units")
	fs.Bool("fallback", false, "draw with the configured transform when the dataset cannot be fitted")
	fs.Int("png-width", 1024, "PNG export width")
	fs.Int("png-height", 768, "PNG export height")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "text", "text or json")
	fs.String("log-file", "polymap.log", "log file for interactive mode")
}

func setDefaults(v *viper.Viper) {
	d := mapview.DefaultStyle
	v.SetDefault("scale", d.Scale)
	v.SetDefault("max_scale", d.MaxScale)
	v.SetDefault("min_scale", d.MinScale)
	v.SetDefault("factor", d.Factor)
	v.SetDefault("offset_x", d.OffsetX)
	v.SetDefault("offset_y", d.OffsetY)
	v.SetDefault("default_fill", d.DefaultFill)
	v.SetDefault("hover_fill", d.HoverFill)
	v.SetDefault("stroke_color", d.StrokeColor)
	v.SetDefault("stroke_width", d.StrokeWidth)
	v.SetDefault("padding", d.Padding)
	v.SetDefault("fallback_on_degenerate", false)
	v.SetDefault("png_width", 1024)
	v.SetDefault("png_height", 768)
	v.SetDefault("frame_interval", 16*time.Millisecond)
	v.SetDefault("tui_padding", 4.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "polymap.log")
}

// Load reads the configuration. fs may be nil; a missing config file is not an
// error unless it was named explicitly.
func Load(fs *pflag.FlagSet) (Config, error) {
	var c Config
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("POLYMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := ""
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
		path, _ = fs.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("polymap")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	c.Style = c.Style.WithDefaults()
	return c, nil
}
