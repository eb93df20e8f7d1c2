package main

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Acam5878/path-of-a-genius/internal/brain"
	"github.com/Acam5878/path-of-a-genius/internal/config"
	"github.com/Acam5878/path-of-a-genius/internal/engine/audio"
	"github.com/Acam5878/path-of-a-genius/internal/engine/capture"
	"github.com/Acam5878/path-of-a-genius/internal/engine/firing"
	"github.com/Acam5878/path-of-a-genius/internal/engine/input"
	"github.com/Acam5878/path-of-a-genius/internal/engine/interaction"
	"github.com/Acam5878/path-of-a-genius/internal/engine/window"
	"github.com/Acam5878/path-of-a-genius/internal/logger"
	"github.com/Acam5878/path-of-a-genius/internal/progress"
	"github.com/Acam5878/path-of-a-genius/internal/progress/watch"
	"github.com/Acam5878/path-of-a-genius/internal/renderer"
)

// regionKeys are the keyboard shortcuts, in catalog order.
var regionKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "="}

// demoState is shown when no state file is configured.
var demoState = progress.State{
	Authenticated:    true,
	UnlockedSubjects: []progress.Subject{progress.Latin, progress.Mathematics},
	QuizScores:       map[progress.Subject]int{progress.Music: 85},
}

// App owns the window, the renderer, the optional state watcher and the
// chime player.
type App struct {
	win     *window.Window
	view    *renderer.Renderer
	watcher *watch.Watcher
	chimes  *audio.Manager // nil when muted or no audio device
	shots   *capture.Capturer
	running bool
	capture bool // save the next drawn frame

	listeners []input.ListenerID
}

// NewApp opens the window and mounts the renderer in it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	win, err := window.New(window.Config{
		Title:      "Brainview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	view, err := renderer.New(win, rendererConfig(cfg))
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	a := &App{
		win:   win,
		view:  view,
		shots: capture.New(cfg.Data.ScreenshotDir, "brain"),
	}

	if cfg.Data.StatePath != "" {
		a.watcher, err = watch.New(cfg.Data.StatePath, view)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("watch state: %w", err)
		}
		go func() {
			if err := a.watcher.Run(ctx); err != nil {
				logger.Error("state watcher stopped", zap.Error(err))
			}
		}()
		logger.Info("watching state file", zap.String("path", a.watcher.Path()))
	} else {
		view.UpdateOptions(progress.Options(demoState))
	}

	if cfg.Audio.Enabled {
		chimes := audio.New(cfg.Audio.Volume)
		if err := chimes.Init(); err != nil {
			logger.Warn("audio unavailable, chimes disabled", zap.Error(err))
		} else {
			a.chimes = chimes
		}
	}

	global := win.Global()
	a.listeners = append(a.listeners,
		global.AddListener(input.KindPointerUp, a.onPointerUp),
		global.AddListener(input.KindKeyDown, a.onKey),
	)
	return a, nil
}

func rendererConfig(cfg *config.Config) renderer.Config {
	return renderer.Config{
		Points:      cfg.Brain.Points,
		Connections: cfg.Brain.Connections,
		Seed:        cfg.Brain.Seed,
		Interaction: interaction.Config{
			DragThreshold:   cfg.Interaction.DragThreshold,
			YawPerPixel:     cfg.Interaction.YawPerPixel,
			PitchPerPixel:   cfg.Interaction.PitchPerPixel,
			PitchLimit:      cfg.Interaction.PitchLimit,
			ResumeDelay:     cfg.Interaction.ResumeDelay,
			AutoRotateSpeed: cfg.Interaction.AutoRotateSpeed,
			Damping:         cfg.Interaction.Damping,
		},
		Firing: firing.Config{
			AmbientInterval: cfg.Firing.AmbientInterval,
			Decay:           cfg.Firing.Decay,
			SampleFraction:  cfg.Firing.SampleFraction,
			ActivePick:      cfg.Firing.ActivePick,
			ActiveIntensity: cfg.Firing.ActiveIntensity,
			IdleIntensity:   cfg.Firing.IdleIntensity,
			LockedIntensity: cfg.Firing.LockedIntensity,
		},
	}
}

// onPointerUp treats a left-button release without a drag as a tap on the
// region under the pointer.
func (a *App) onPointerUp(ev input.Event) {
	if ev.Button != sdl.BUTTON_LEFT || a.view.HasDragged() {
		return
	}
	key, ok := a.view.PickRegion(ev.X, ev.Y)
	if !ok {
		return
	}
	a.fire(brain.Index(key))
}

func (a *App) onKey(ev input.Event) {
	switch ev.Key {
	case "Escape":
		a.running = false
		return
	case "P":
		a.capture = true
		return
	case "L":
		opts := a.view.Options()
		opts.IsLocked = !opts.IsLocked
		a.view.UpdateOptions(opts)
		logger.Info("lock toggled", zap.Bool("locked", opts.IsLocked))
		return
	}

	for i, k := range regionKeys {
		if ev.Key == k {
			a.fire(i)
			return
		}
	}
}

// fire pulses the region at catalog index i, rings its chime and names it in
// the title bar.
func (a *App) fire(i int) {
	region := brain.At(i)
	a.view.TriggerRegionFire(region.Key, renderer.DefaultFireIntensity)
	a.win.SetTitle("Brainview - " + region.Label + ": " + region.Description)
	if a.chimes != nil {
		if err := a.chimes.Chime(i, renderer.DefaultFireIntensity); err != nil {
			logger.Debug("chime failed", zap.Error(err))
		}
	}
}

// Run drives the host loop until quit, Escape or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running && ctx.Err() == nil {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.win.Poll() {
			break
		}
		a.win.RunFrames(dt)
		if a.capture {
			a.capture = false
			a.screenshot()
		}
		a.win.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) screenshot() {
	pixels, width, height := a.win.ReadPixels()
	path, err := a.shots.SavePixels(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close tears down in reverse order of construction.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.chimes != nil {
		a.chimes.Close()
	}
	global := a.win.Global()
	for _, id := range a.listeners {
		global.RemoveListener(id)
	}
	a.view.Dispose()
	a.win.Close()
}
