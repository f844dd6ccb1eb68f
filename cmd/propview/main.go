// propview shows a generated prop in an OpenGL window.
//
// Keys: R or Right next seed, Left previous seed, W wireframe, F refit the
// camera, Escape quits. Drag to orbit and scroll to zoom.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/config"
	"github.com/Faultbox/propforge/internal/logger"
	"github.com/Faultbox/propforge/internal/viewer"
)

func main() {
	fs := flag.NewFlagSet("propview", flag.ExitOnError)
	seed := fs.Uint64("seed", 0, "Random seed (0 = defaults or params file)")
	paramsFile := fs.String("params", "", "YAML or TOML parameter file")
	watch := fs.Bool("watch", false, "Reload when the params file changes")
	flags := config.BindFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.LoggerOptions())
	defer logger.Sync()
	assets.PackConfig = cfg.Atlas

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: propview [options] <asset>")
		os.Exit(1)
	}
	kind, err := assets.Builtin().Kind(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, newSession(kind, *seed, *paramsFile), *watch); err != nil {
		logger.Error("propview failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, s *session, watch bool) error {
	win, err := viewer.NewWindow(viewer.WindowConfig{
		Title:  s.title(),
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	r, err := viewer.NewRenderer()
	if err != nil {
		return err
	}
	defer r.Destroy()
	r.FOV = cfg.Viewer.FOV
	r.Wireframe = cfg.Viewer.Wireframe
	r.Clear = cfg.Viewer.Clear

	cam := viewer.NewOrbitCamera()

	var changed <-chan struct{}
	if watch && s.paramsFile != "" {
		var stop func()
		changed, stop, err = watchFile(s.paramsFile, s.log)
		if err != nil {
			return fmt.Errorf("watching %s: %w", s.paramsFile, err)
		}
		defer stop()
	}

	show := func(fit bool) {
		parts, err := s.parts()
		if err != nil {
			// Keep the last good meshes on screen.
			s.log.Error("generate failed", zap.Error(err))
			return
		}
		r.SetParts(parts)
		for _, p := range parts {
			p.Mesh.Release()
		}
		if fit {
			cam.Fit(r.Bounds(), r.FOV)
		}
		win.SetTitle(s.title())
	}
	show(true)

	dragging := false
	for running := true; running; {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.State == sdl.PRESSED
				}
			case *sdl.MouseMotionEvent:
				if dragging {
					cam.HandleDrag(float32(e.XRel), float32(e.YRel))
				}
			case *sdl.MouseWheelEvent:
				cam.HandleZoom(float32(e.Y))
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					running = false
				case sdl.K_r, sdl.K_RIGHT:
					s.next()
					show(false)
				case sdl.K_LEFT:
					s.prev()
					show(false)
				case sdl.K_w:
					r.Wireframe = !r.Wireframe
				case sdl.K_f:
					cam.Fit(r.Bounds(), r.FOV)
				}
			}
		}

		select {
		case <-changed:
			s.log.Info("params file changed", zap.String("file", s.paramsFile))
			s.reload()
			show(false)
		default:
		}

		w, h := win.Size()
		r.Draw(cam, w, h)
		win.SwapBuffers()
	}

	hits, misses := s.cache.Stats()
	s.log.Debug("cache", zap.Int("hits", hits), zap.Int("misses", misses))
	s.cache.Clear()
	return nil
}
