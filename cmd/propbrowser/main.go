// propbrowser is an interactive editor for the parametric props: pick an
// asset, tune its parameters and export the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/config"
	"github.com/Faultbox/propforge/internal/logger"
	"github.com/Faultbox/propforge/internal/viewer"
)

func main() {
	runtime.LockOSThread()

	fs := flag.NewFlagSet("propbrowser", flag.ExitOnError)
	asset := fs.String("asset", "", "Asset to open")
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

	app, err := NewApp(cfg)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer app.Close()

	name := *asset
	if name == "" {
		name = app.state.names[0]
	}
	if err := app.state.selectKind(name); err != nil {
		logger.Warn("unknown asset", zap.Error(err))
	}

	app.Run()
}

// App is the propbrowser application.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config
	state   *state

	renderer *viewer.Renderer
	fb       *viewer.Framebuffer
	camera   *viewer.OrbitCamera
	fitNext  bool

	// pending carries work from dialog goroutines to the main thread.
	pending chan func()

	seedInput int32
	status    string
	statusAt  time.Time

	lastMousePos imgui.Vec2
}

// NewApp creates the window and GL resources.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:       cfg,
		state:     newState(assets.Builtin()),
		camera:    viewer.NewOrbitCamera(),
		pending:   make(chan func(), 4),
		seedInput: 1,
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("creating backend: %w", err)
	}
	c := cfg.Viewer.Clear
	app.backend.SetBgColor(imgui.NewVec4(c[0]*0.6, c[1]*0.6, c[2]*0.6, 1))
	app.backend.CreateWindow("Prop Browser", cfg.Viewer.Width, cfg.Viewer.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}
	app.renderer, err = viewer.NewRenderer()
	if err != nil {
		return nil, err
	}
	app.renderer.FOV = cfg.Viewer.FOV
	app.renderer.Wireframe = cfg.Viewer.Wireframe
	app.renderer.Clear = cfg.Viewer.Clear

	app.fb, err = viewer.NewFramebuffer(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height))
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Close releases GPU and mesh resources.
func (app *App) Close() {
	app.state.release()
	if app.renderer != nil {
		app.renderer.Destroy()
	}
	if app.fb != nil {
		app.fb.Destroy()
	}
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

func (app *App) report(err error, ok string) {
	if err != nil {
		app.status = "Error: " + err.Error()
		logger.Warn("action failed", zap.Error(err))
	} else {
		app.status = ok
	}
	app.statusAt = time.Now()
}

func (app *App) render() {
	for drained := false; !drained; {
		select {
		case fn := <-app.pending:
			fn()
		default:
			drained = true
		}
	}

	if app.state.rebuild() {
		app.renderer.SetParts(app.state.parts)
		if app.fitNext {
			app.camera.Fit(app.renderer.Bounds(), app.renderer.FOV)
			app.fitNext = false
		}
	}

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Load Parameters...") {
				app.loadParamsDialog()
			}
			if imgui.MenuItemBool("Save Parameters...") {
				app.saveParamsDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Export Mesh...") {
				app.exportDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			imgui.Checkbox("Wireframe", &app.renderer.Wireframe)
			if imgui.MenuItemBool("Fit Camera") {
				app.camera.Fit(app.renderer.Bounds(), app.renderer.FOV)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	leftPanelWidth := float32(220)
	rightPanelWidth := float32(360)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight
	previewWidth := workSize.X - leftPanelWidth - rightPanelWidth

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Assets", nil, flags) {
		app.renderAssetList()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(previewWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth+previewWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(rightPanelWidth, contentHeight))
	if imgui.BeginV("Parameters", nil, flags) {
		app.renderParams()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	if imgui.BeginV("##StatusBar", nil, flags|imgui.WindowFlagsNoTitleBar|imgui.WindowFlagsNoScrollbar) {
		app.renderStatusBar()
	}
	imgui.End()
}

func (app *App) renderAssetList() {
	for _, name := range app.state.names {
		k, err := app.state.registry.Kind(name)
		if err != nil {
			continue
		}
		selected := app.state.kind == k
		if imgui.SelectableBoolV(k.DisplayName(), selected, 0, imgui.NewVec2(0, 0)) && !selected {
			app.state.selectKind(name)
			app.fitNext = true
		}
	}

	imgui.Separator()
	imgui.Text("Seed")
	imgui.SetNextItemWidth(-1)
	if imgui.InputInt("##seed", &app.seedInput) && app.seedInput < 1 {
		app.seedInput = 1
	}
	if imgui.ButtonV("Randomize", imgui.NewVec2(-1, 0)) {
		app.state.randomize(uint64(app.seedInput))
	}
	if imgui.ButtonV("Next Seed", imgui.NewVec2(-1, 0)) {
		app.seedInput++
		app.state.randomize(uint64(app.seedInput))
	}
	if imgui.ButtonV("Defaults", imgui.NewVec2(-1, 0)) {
		app.state.resetDefaults()
	}
}

func (app *App) renderPreview() {
	if len(app.state.parts) == 0 {
		imgui.TextDisabled("Nothing to show")
		return
	}

	avail := imgui.ContentRegionAvail()
	w, h := int32(avail.X), int32(avail.Y-30)
	if w < 1 || h < 1 {
		return
	}
	app.fb.Resize(w, h)
	restore := app.fb.Bind()
	app.renderer.Draw(app.camera, int(w), int(h))
	restore()

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(float32(w), float32(h)),
		imgui.NewVec2(0, 1), // UV flipped
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.camera.HandleDrag(mousePos.X-app.lastMousePos.X, mousePos.Y-app.lastMousePos.Y)
		}
		app.lastMousePos = mousePos
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.camera.HandleZoom(wheel)
		}
	}

	if imgui.Button("Fit") {
		app.camera.Fit(app.renderer.Bounds(), app.renderer.FOV)
	}
	imgui.SameLine()
	imgui.Checkbox("Wireframe", &app.renderer.Wireframe)
	imgui.SameLine()
	imgui.TextDisabled("(Drag to rotate, scroll to zoom)")
}

func (app *App) renderStatusBar() {
	parts, verts, tris := app.state.stats()
	text := fmt.Sprintf("%d parts  %d vertices  %d triangles", parts, verts, tris)
	if app.state.seed != 0 {
		text += fmt.Sprintf("  seed %d", app.state.seed)
	}
	for _, a := range app.state.atlases() {
		size, _ := a.Result.Size()
		text += fmt.Sprintf("  %s atlas %.3g (%.0f%%)", a.Name, size, 100*a.Result.Used())
	}
	imgui.Text(text)

	if app.state.lastErr != nil {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), app.state.lastErr.Error())
	} else if app.status != "" && time.Since(app.statusAt) < 4*time.Second {
		imgui.SameLine()
		imgui.TextDisabled(app.status)
	}
}
