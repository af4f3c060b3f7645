package main

import (
	"fmt"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/leonkasovan/gldemo/packages/anim"
	"github.com/leonkasovan/gldemo/packages/render"
)

// Host is what the demos need from the window system.
type Host interface {
	Context(id string) (render.Context, error)
	anim.Clock
	SetStatus(string)
}

type demo struct {
	name string
	run  func(a *App, ctx render.Context, scope *render.Scope) error
}

var demos = []demo{
	{"clear", (*App).runClear},
	{"white square", (*App).runWhiteSquare},
	{"colour square", (*App).runColorSquare},
	{"rotating square", (*App).runRotatingSquare},
	{"colour cube", (*App).runColorCube},
	{"textured cube", (*App).runTexturedCube},
	{"banner cube", (*App).runBannerCube},
}

// App runs one demo at a time on the configured surface. All methods
// must be called from the render thread.
type App struct {
	cfg      *Config
	host     Host
	ctl      *anim.RunController
	textures *render.TextureCache

	current int
	run     int
	scope   *render.Scope
	sched   *anim.Scheduler
	cycles  map[int][]*anim.Cycle
	banner  uint32
}

func NewApp(cfg *Config, host Host, textures *render.TextureCache) *App {
	return &App{
		cfg:      cfg,
		host:     host,
		ctl:      anim.DefaultRunController,
		textures: textures,
		cycles:   make(map[int][]*anim.Cycle),
	}
}

// Show switches to demo n (1-based). A running animation is stopped
// first, so an animated demo always starts.
func (a *App) Show(n int) error {
	a.ctl.Stop()
	return a.exec(n)
}

// Rerun runs the current demo again without stopping the animation. For
// an animated demo this toggles it: a running animation stops, a stopped
// one restarts.
func (a *App) Rerun() error {
	if a.current == 0 {
		return a.Show(a.cfg.StartDemo)
	}
	return a.exec(a.current)
}

// Current is the demo last run, 0 before the first.
func (a *App) Current() int { return a.current }

// Close releases the resources of the current demo.
func (a *App) Close() {
	a.ctl.Stop()
	a.scope.Close()
	a.scope = nil
}

func (a *App) exec(n int) error {
	if n < 1 || n > len(demos) {
		return fmt.Errorf("no demo %d", n)
	}
	d := demos[n-1]
	a.scope.Close()
	a.scope = &render.Scope{}
	a.current = n
	a.run++

	ctx, err := a.host.Context(a.cfg.Surface)
	if err != nil {
		return a.fail(n, err)
	}
	render.InitContext(ctx)
	if err := d.run(a, ctx, a.scope); err != nil {
		return a.fail(n, err)
	}
	logger.Debug("demo run", "demo", n, "name", d.name, "animating", a.ctl.Running())
	return nil
}

// fail aborts the demo and ends any loop left from the previous run.
func (a *App) fail(n int, err error) error {
	a.ctl.Stop()
	a.scope.Close()
	logger.Error("demo failed", "demo", n, "err", err)
	a.host.SetStatus(" " + err.Error())
	return err
}

// still prepares a demo that draws a single frame.
func (a *App) still(draw func()) {
	a.ctl.Stop()
	a.host.SetStatus("")
	run := a.run
	a.host.RequestFrame(func() {
		if run == a.run {
			draw()
		}
	})
}

// animate starts the frame loop of the current demo. Without a preceding
// Stop this toggles the shared controller off instead.
func (a *App) animate(frame func(), cycles ...*anim.Cycle) {
	a.sched = anim.NewScheduler(a.ctl, a.host, frame, cycles...)
	if !a.sched.Start() {
		logger.Debug("animation stopped", "demo", a.current)
	}
}

// cyclesFor returns the accumulators of demo n, creating them with the
// given periods the first time. They persist across runs so a restarted
// animation resumes where it stopped.
func (a *App) cyclesFor(n int, periods ...float64) []*anim.Cycle {
	if cs, ok := a.cycles[n]; ok {
		return cs
	}
	cs := make([]*anim.Cycle, len(periods))
	for i, p := range periods {
		cs[i] = anim.NewCycle(p)
	}
	a.cycles[n] = cs
	return cs
}

func (a *App) program(ctx render.Context, scope *render.Scope, vert, frag string) (*render.Program, error) {
	vs, fs, err := shaderPair(a.cfg.ShaderDir, vert, frag)
	if err != nil {
		return nil, err
	}
	p, err := render.NewProgram(ctx, vs, fs)
	if err != nil {
		return nil, err
	}
	scope.Defer(p.Dispose)
	return p, nil
}

func (a *App) geometry(ctx render.Context, scope *render.Scope) *render.Geometry {
	g := render.NewGeometry(ctx)
	scope.Defer(g.Dispose)
	return g
}

func setMatrices(ctx render.Context, p *render.Program, mv mgl.Mat4) {
	proj := render.Perspective(render.Aspect(ctx))
	p.SetUniformMatrix("uProjectionMatrix", proj[:])
	p.SetUniformMatrix("uModelViewMatrix", mv[:])
}

func clearScreen(ctx render.Context) {
	ctx.Clear(render.COLOR_BUFFER_BIT | render.DEPTH_BUFFER_BIT)
}

// rotationStatus formats the readout of the animated demos: a single
// angle for one accumulator, one per axis for three.
func rotationStatus(cs []*anim.Cycle) string {
	if len(cs) == 1 {
		return " angle=" + cs[0].Degree()
	}
	var sb strings.Builder
	for i, c := range cs {
		fmt.Fprintf(&sb, " R%c=%s", "xyz"[i], c.Degree())
	}
	return sb.String()
}

func (a *App) runClear(ctx render.Context, _ *render.Scope) error {
	a.still(func() { clearScreen(ctx) })
	return nil
}

func (a *App) runWhiteSquare(ctx render.Context, scope *render.Scope) error {
	p, err := a.program(ctx, scope, "position", "white")
	if err != nil {
		return err
	}
	g := a.geometry(ctx, scope)
	g.Attribute(p, "aVertexPosition", whiteSquare, 2)
	a.still(func() {
		p.Use()
		setMatrices(ctx, p, render.ModelView(-4, 0, 0, 0))
		clearScreen(ctx)
		ctx.DrawArrays(render.TRIANGLE_STRIP, 0, 4)
	})
	return nil
}

func (a *App) runColorSquare(ctx render.Context, scope *render.Scope) error {
	p, err := a.program(ctx, scope, "color", "color")
	if err != nil {
		return err
	}
	g := a.geometry(ctx, scope)
	g.Attribute(p, "aVertexPosition", colorSquare, 2)
	g.Attribute(p, "aVertexColor", colorSquareColors, 4)
	a.still(func() {
		p.Use()
		setMatrices(ctx, p, render.ModelView(-4, 0, 0, 0))
		clearScreen(ctx)
		ctx.DrawArrays(render.TRIANGLE_STRIP, 0, 4)
	})
	return nil
}

func (a *App) runRotatingSquare(ctx render.Context, scope *render.Scope) error {
	p, err := a.program(ctx, scope, "color", "color")
	if err != nil {
		return err
	}
	g := a.geometry(ctx, scope)
	g.Attribute(p, "aVertexPosition", colorSquare, 2)
	g.Attribute(p, "aVertexColor", colorSquareColors, 4)

	cs := a.cyclesFor(4, a.cfg.Animation.Square)
	a.animate(func() {
		a.host.SetStatus(rotationStatus(cs))
		p.Use()
		setMatrices(ctx, p, render.ModelView(-4, 0, 0, cs[0].Ratio()))
		clearScreen(ctx)
		ctx.DrawArrays(render.TRIANGLE_STRIP, 0, 4)
	}, cs...)
	return nil
}

// spinCube animates an indexed cube at depth z, rotating it about all
// three axes. bind, if set, runs before each draw.
func (a *App) spinCube(ctx render.Context, p *render.Program, z float32, cs []*anim.Cycle, bind func()) {
	a.animate(func() {
		a.host.SetStatus(rotationStatus(cs))
		p.Use()
		setMatrices(ctx, p, render.ModelView(z, cs[0].Ratio(), cs[1].Ratio(), cs[2].Ratio()))
		if bind != nil {
			bind()
		}
		clearScreen(ctx)
		ctx.DrawElements(render.TRIANGLES, int32(len(cubeIndices)), render.UNSIGNED_SHORT, 0)
	}, cs...)
}

func (a *App) runColorCube(ctx render.Context, scope *render.Scope) error {
	p, err := a.program(ctx, scope, "color", "color")
	if err != nil {
		return err
	}
	g := a.geometry(ctx, scope)
	g.Attribute(p, "aVertexPosition", cubePositions, 3)
	g.Attribute(p, "aVertexColor", cubeColors(), 4)
	g.Indices(cubeIndices)
	a.spinCube(ctx, p, -5, a.cyclesFor(5, a.cfg.Animation.Periods[:]...), nil)
	return nil
}

func (a *App) runTexturedCube(ctx render.Context, scope *render.Scope) error {
	p, err := a.program(ctx, scope, "texture", "texture")
	if err != nil {
		return err
	}
	p.RegisterTextures("uSampler")
	g := a.geometry(ctx, scope)
	g.Attribute(p, "aVertexPosition", cubePositions, 3)
	g.Attribute(p, "aTextureCoord", cubeTexCoords, 2)
	g.Indices(cubeIndices)

	tex := a.textures.Load(ctx, a.cfg.Images.Texture)
	unit, _ := p.TextureUnit("uSampler")
	a.spinCube(ctx, p, -5, a.cyclesFor(6, a.cfg.Animation.Periods[:]...), func() {
		render.BindSampler(ctx, p, "uSampler", unit, tex)
	})
	return nil
}

// bannerTexture keeps one texture for the banner cube, loading it again
// only when the old one is no longer a valid texture.
func (a *App) bannerTexture(ctx render.Context) uint32 {
	if a.banner != 0 && ctx.IsTexture(a.banner) {
		return a.banner
	}
	a.banner = a.textures.Reload(ctx, a.cfg.Images.Banner)
	return a.banner
}

func (a *App) runBannerCube(ctx render.Context, scope *render.Scope) error {
	p, err := a.program(ctx, scope, "texture", "texture")
	if err != nil {
		return err
	}
	p.RegisterTextures("uSampler")
	g := a.geometry(ctx, scope)
	g.Attribute(p, "aVertexPosition", cubePositions, 3)
	g.Indices(cubeIndices)
	g.Attribute(p, "aTextureCoord", bannerTexCoords, 2)

	tex := a.bannerTexture(ctx)
	unit, _ := p.TextureUnit("uSampler")
	a.spinCube(ctx, p, -6, a.cyclesFor(7, a.cfg.Animation.Periods[:]...), func() {
		render.BindSampler(ctx, p, "uSampler", unit, tex)
	})
	return nil
}
