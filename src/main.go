package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/leonkasovan/gldemo/packages/glfw"
	"github.com/leonkasovan/gldemo/packages/render"
)

var logger = slog.Default()

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file",
		Value:   "gldemo.toml",
	}
	demoFlag = &cli.IntFlag{
		Name:  "demo",
		Usage: "demo to show first (1-7)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error",
		Value: "info",
	}
	shaderDirFlag = &cli.StringFlag{
		Name:  "shader-dir",
		Usage: "load shaders from `DIR` and rerun the demo when they change",
	}
	writeConfigFlag = &cli.BoolFlag{
		Name:  "write-config",
		Usage: "write the effective configuration to the --config file and exit",
	}
)

func newCLI() *cli.App {
	return &cli.App{
		Name:  "gldemo",
		Usage: "OpenGL teaching demos",
		Description: "Keys 1-7 switch demos, Space starts or stops the animation of the\n" +
			"current demo, Esc quits.",
		Flags: []cli.Flag{
			configFlag,
			demoFlag,
			logLevelFlag,
			shaderDirFlag,
			writeConfigFlag,
		},
		Before: func(c *cli.Context) error {
			return setupLogging(c.String(logLevelFlag.Name))
		},
		Action: run,
	}
}

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	render.SetLogger(logger)
	return nil
}

// configure merges the config file and the command line.
func configure(c *cli.Context) (*Config, error) {
	cfg, err := loadConfig(c.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if c.IsSet(demoFlag.Name) {
		cfg.StartDemo = c.Int(demoFlag.Name)
	}
	if c.IsSet(shaderDirFlag.Name) {
		cfg.ShaderDir = c.String(shaderDirFlag.Name)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Checks if error is not nil; startup errors leave nothing to run.
func chk(err error) {
	if err != nil {
		logger.Error(err.Error())
		panic(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := configure(c)
	if err != nil {
		return err
	}
	if c.Bool(writeConfigFlag.Name) {
		return writeConfig(c.String(configFlag.Name), cfg)
	}

	host, err := glfw.Open(glfw.Options{
		ID:     cfg.Surface,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	})
	chk(err)
	defer host.Close()

	loader := &render.Loader{Dir: cfg.Images.Dir, Post: host.Post}
	images := render.NewImageList(loader, host.Post)
	images.Parallel = cfg.Images.Parallel
	defer images.Close()

	textures := render.NewTextureCache(prefetched{images, loader})
	textures.OnError = func(err *render.ImageLoadError) {
		host.SetStatus(" " + err.Error())
	}
	defer textures.Dispose()

	app := NewApp(cfg, host, textures)
	defer app.Close()

	ready := false
	host.OnKey(func(k glfw.Key) {
		switch {
		case k == glfw.KeyEscape:
			host.Quit()
		case !ready:
		case k >= glfw.Key1 && k <= glfw.Key7:
			app.Show(int(k-glfw.Key1) + 1)
		case k == glfw.KeySpace:
			app.Rerun()
		}
	})

	if cfg.ShaderDir != "" {
		w, err := watchShaders(cfg.ShaderDir, func() {
			host.Post(func() {
				if ready {
					app.Show(app.Current())
				}
			})
		})
		if err != nil {
			logger.Warn("shader reload disabled", "dir", cfg.ShaderDir, "err", err)
		} else {
			defer w.Close()
		}
	}

	host.SetStatus(" loading images...")
	images.Load(cfg.Images.Prefetch, func() {
		ready = true
		logger.Info("images prefetched", "requested", len(cfg.Images.Prefetch), "loaded", images.Len())
		host.SetStatus("")
		app.Show(cfg.StartDemo)
	})

	host.Run()
	logger.Info("bye", "fps", fmt.Sprintf("%.1f", host.FPS()))
	return nil
}
