package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"polymap/internal/config"
	"polymap/internal/geom"
	"polymap/internal/logger"
	"polymap/internal/mapview"
	"polymap/internal/raster"
	"polymap/internal/tui"
)

func main() {
	fs := pflag.NewFlagSet("polymap", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: polymap [flags] [file]\n\n")
		fs.PrintDefaults()
	}
	config.Flags(fs)
	pngOut := fs.String("png", "", "render file to this PNG and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatal(err)
	}

	if *pngOut != "" {
		if fs.NArg() == 0 {
			fs.Usage()
			os.Exit(2)
		}
		if err := exportPNG(cfg, fs.Arg(0), *pngOut); err != nil {
			log.Fatal(err)
		}
		return
	}

	f, err := tea.LogToFile(cfg.LogFile, "polymap")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	lg := logger.New(f, cfg.LogLevel, cfg.LogFormat)

	var m tea.Model
	if fs.NArg() > 0 {
		m = tui.NewWithPath(cfg, lg, fs.Arg(0))
	} else {
		m = tui.New(cfg, lg)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

// exportPNG renders in to a PNG at out without starting the terminal UI.
func exportPNG(cfg config.Config, in, out string) error {
	lg := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	d, err := geom.Load(in)
	if err != nil {
		return err
	}
	img, err := raster.Render(d, cfg.PNGWidth, cfg.PNGHeight, mapview.Options{
		Style:                cfg.Style,
		Logger:               lg,
		FallbackOnDegenerate: cfg.FallbackOnDegenerate,
	})
	if err != nil {
		return err
	}
	if err := raster.WritePNG(out, img); err != nil {
		return err
	}
	lg.Info("export", "in", in, "out", out, "features", d.Len(), "skipped", d.Skipped)
	return nil
}
