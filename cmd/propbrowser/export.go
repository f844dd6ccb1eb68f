package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/export"
)

// exportParts writes the current parts to path, picking the format from the
// extension. OBJ is the default.
func (s *state) exportParts(path string) error {
	if len(s.parts) == 0 {
		return fmt.Errorf("nothing to export")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".3mf":
		return export.Write3MF(path, s.parts)
	case ".stl":
		return writeWith(path, func(w *bufio.Writer) error { return export.WriteSTL(w, name, s.parts) })
	case ".obj":
	default:
		path += ".obj"
	}
	return writeWith(path, func(w *bufio.Writer) error { return export.WriteOBJ(w, name, s.parts) })
}

func writeWith(path string, write func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Native dialogs block, so they run off the main thread and hand their
// result back through pending, which render drains.

func (app *App) exportDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("STL", "stl").
			Filter("3D Manufacturing Format", "3mf").
			Title("Export Mesh").
			Save()
		if app.dialogDone(err) {
			app.pending <- func() {
				app.report(app.state.exportParts(path), "exported "+path)
			}
		}
	}()
}

func (app *App) saveParamsDialog() {
	go func() {
		path, err := dialog.File().
			Filter("YAML", "yaml", "yml").
			Filter("TOML", "toml").
			Title("Save Parameters").
			Save()
		if app.dialogDone(err) {
			app.pending <- func() {
				app.report(app.state.saveParams(path), "saved "+path)
			}
		}
	}()
}

func (app *App) loadParamsDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Parameters", "yaml", "yml", "toml").
			Title("Load Parameters").
			Load()
		if app.dialogDone(err) {
			app.pending <- func() {
				app.report(app.state.loadParams(path), "loaded "+path)
			}
		}
	}()
}

func (app *App) dialogDone(err error) bool {
	if err == nil {
		return true
	}
	if err != dialog.ErrCancelled {
		app.state.log.Warn("file dialog", zap.Error(err))
	}
	return false
}
