package cmd

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/kean/FetchImage/cmd/fetchimage/internal/config"
	"github.com/kean/FetchImage/cmd/fetchimage/internal/demopipeline"
	"github.com/kean/FetchImage/pkg/fetchimage"
	"github.com/kean/FetchImage/pkg/pipeline"
)

func init() {
	RegisterCommand(&Command{
		Name:  "fetch",
		Short: "Fetch images and watch the controller state machine",
		Long: `Fetch one or more images through the demo pipeline, printing every
observable state transition: cache probes, byte progress, fallback
loads, and terminal results.

Sources come from positional URLs, from fetchimage.yaml in the
manifest directory, or both. URLs may be http(s) or local file paths.

With --constrained the demo pipeline simulates a constrained network:
regular loads fail and low-data fallbacks (which allow constrained
access) take over.`,
		Usage: "fetchimage fetch [--manifest DIR] [--constrained] [--thumb DIR] [url ...]",
		Run:   runFetch,
	})
}

func runFetch(args []string) error {
	flags := flag.NewFlagSet("fetch", flag.ContinueOnError)
	manifestDir := flags.String("manifest", ".", "directory containing fetchimage.yaml")
	constrained := flags.Bool("constrained", false, "simulate a constrained network")
	thumbDir := flags.String("thumb", "", "write 128x128 PNG thumbnails to this directory")
	if err := flags.Parse(args); err != nil {
		return err
	}

	manifest, err := config.LoadOptional(*manifestDir)
	if err != nil {
		return err
	}

	sources := manifest.Sources
	for _, url := range flags.Args() {
		sources = append(sources, config.Source{URL: url})
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources: pass URLs or list them in fetchimage.yaml")
	}

	pipe := demopipeline.New()
	pipe.Constrained = *constrained || manifest.Defaults.Constrained

	for _, src := range sources {
		req, err := manifest.Request(src)
		if err != nil {
			return err
		}
		if err := fetchOne(pipe, req, src.LowDataURL, *thumbDir); err != nil {
			return err
		}
	}
	return nil
}

func fetchOne(pipe *demopipeline.Pipeline, request pipeline.Request, lowDataURL, thumbDir string) error {
	fmt.Printf("fetching %s (priority %s)\n", request.URL, request.Priority)

	// The demo's owning context is this goroutine: pipeline callbacks are
	// queued and drained here, never applied from the loader goroutine.
	events := make(chan func(), 64)
	controller := fetchimage.New(pipe, fetchimage.WithDispatcher(func(cb func()) {
		events <- cb
	}))
	defer controller.Dispose()

	controller.Progress.AddListener(func(p fetchimage.Progress) {
		if p.Total > 0 {
			fmt.Printf("  progress %d/%d bytes\n", p.Completed, p.Total)
		} else if p.Completed > 0 {
			fmt.Printf("  progress %d bytes\n", p.Completed)
		}
	})

	if lowDataURL != "" {
		controller.FetchURLWithLowData(request.URL, lowDataURL)
	} else {
		controller.Fetch(request)
	}

	for controller.IsLoading.Value() {
		cb := <-events
		cb()
	}

	if err := controller.Error.Value(); err != nil {
		fmt.Printf("  failed: %v\n", err)
		return nil
	}

	view := controller.View()
	if view.Empty() {
		fmt.Println("  no image")
		return nil
	}

	bounds := view.Source().Bounds()
	fmt.Printf("  loaded %dx%d (quality %s)\n", bounds.Dx(), bounds.Dy(), controller.LoadedQuality())

	if thumbDir != "" {
		if err := writeThumbnail(view, thumbDir, request.URL); err != nil {
			return err
		}
	}
	return nil
}

func writeThumbnail(view fetchimage.ImageView, dir, url string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	path := filepath.Join(dir, name+".thumb.png")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, view.Scaled(128, 128, fetchimage.FitContain)); err != nil {
		return err
	}
	fmt.Printf("  thumbnail %s\n", path)
	return nil
}
