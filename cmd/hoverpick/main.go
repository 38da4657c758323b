package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoverpick/hoverpick/internal/audio"
	"github.com/hoverpick/hoverpick/internal/config"
	"github.com/hoverpick/hoverpick/internal/core/event"
	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/data"
	"github.com/hoverpick/hoverpick/internal/frontend/term"
	"github.com/hoverpick/hoverpick/internal/frontend/window"
	"github.com/hoverpick/hoverpick/internal/handler"
	gonet "github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"github.com/hoverpick/hoverpick/internal/persist"
	"github.com/hoverpick/hoverpick/internal/scripting"
	"github.com/hoverpick/hoverpick/internal/system"
	"github.com/hoverpick/hoverpick/internal/world"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name, frontend string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             hoverpick  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      screen → world picking on Z = 0      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mscene:\033[0m %s \033[90m(frontend: %s)\033[0m\n\n", name, frontend)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/hoverpick.toml"
	if p := os.Getenv("HOVERPICK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.App.StartTime = time.Now().Unix()

	// 2. Init logger
	log, err := newLogger(cfg.Logging, cfg.App.Frontend)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch cfg.App.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	if err := packet.SetCharset(cfg.Network.Charset); err != nil {
		return fmt.Errorf("network charset: %w", err)
	}

	printBanner(cfg.App.Name, cfg.App.Frontend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Scene
	printSection("Scene")
	sc, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	st := world.NewState()
	stats, err := sc.Spawn(st)
	if err != nil {
		return fmt.Errorf("spawn scene: %w", err)
	}
	printStat("cameras", stats.Cameras)
	printStat("pickable objects", stats.Objects)
	printStat("lights", stats.Lights)
	printStat("sprite sheets (async)", len(sc.Sheets))
	printStat("ui slots (async)", len(sc.UI))
	loader := data.StartLoader(ctx, sc)

	bus := event.NewBus()
	deps := &handler.Deps{
		World:    st,
		Bus:      bus,
		Log:      log,
		AuthHash: cfg.Network.AuthHash,
	}
	event.Subscribe(bus, func(e event.ActiveCameraChanged) {
		if e.Camera.IsZero() {
			log.Info("active camera cleared")
			return
		}
		log.Info("active camera", zap.String("name", e.Name), zap.Stringer("entity", e.Camera))
	})

	// 4. Prefs
	prefs := persist.NewPrefsStore(nil)
	if cfg.Prefs.Enabled {
		if p, err := persist.OpenPrefs(cfg.Prefs.AppName); err != nil {
			log.Warn("prefs unavailable", zap.Error(err))
		} else {
			prefs = p
		}
	}
	if saved, ok, err := prefs.Load(); err != nil {
		log.Warn("prefs load failed", zap.Error(err))
	} else if ok {
		if saved.ActiveCamera != "" && !handler.SelectCamera(deps, saved.ActiveCamera) {
			log.Info("saved camera no longer in scene", zap.String("name", saved.ActiveCamera))
		}
		if saved.WindowWidth > 0 && saved.WindowHeight > 0 {
			cfg.Window.Width, cfg.Window.Height = saved.WindowWidth, saved.WindowHeight
		}
	}

	// 5. Scripts
	engine, err := scripting.NewEngine(cfg.Scene.ScriptsDir, scripting.Bindings{
		SetActiveCamera:   func(name string) bool { return handler.SelectCamera(deps, name) },
		ClearActiveCamera: func() { handler.ClearCamera(deps) },
	}, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	engine.Attach(bus)
	if engine.HasHook("on_hover_changed") {
		printOK("Lua hover hook loaded")
	}

	// 6. Audio
	if cfg.Audio.Enabled {
		blip := audio.NewBlipper(cfg.Audio)
		if err := blip.Init(); err != nil {
			log.Warn("audio init failed, running silent", zap.Error(err))
		}
		blip.Attach(bus, log)
		defer blip.Close()
	}
	fmt.Println()

	runner := coresys.NewRunner()
	runner.Register(system.NewAssetSystem(loader, st, log))

	// 7. Database
	var journal *system.JournalSystem
	if cfg.Database.Enabled {
		printSection("Database")
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")
		err = persist.RunMigrations(dbCtx, db)
		cancel()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		fmt.Println()

		journal = system.NewJournalSystem(persist.NewJournalRepo(db), st, bus, log,
			cfg.Journal.FlushInterval, cfg.Journal.MaxBuffered)
	}

	// 8. Pointer feed
	var netServer *gonet.Server
	store := gonet.NewSessionStore()
	if cfg.Network.Enabled {
		netServer, err = gonet.NewServer(cfg.Network, log)
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		pktReg := packet.NewRegistry(log)
		handler.RegisterAll(pktReg, deps)
		runner.Register(system.NewInputSystem(netServer, pktReg, store, cfg.Network.MaxPacketsPerTick, log))
		go netServer.AcceptLoop()
		defer netServer.Shutdown()
	}

	// 9. Systems
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewPickingSystem(st, bus, log))
	runner.Register(system.NewFeedbackSystem(st, log))
	if netServer != nil {
		// after FeedbackSystem so this frame's text goes out this frame
		runner.Register(system.NewBroadcastSystem(st, store))
	}
	if journal != nil {
		runner.Register(journal)
	}
	runner.Register(system.NewCleanupSystem(st.ECS, log))

	printSection("Ready")
	if netServer != nil {
		printReady(fmt.Sprintf("pointer feed on %s", netServer.Addr().String()))
	}
	printReady(fmt.Sprintf("frame loop (tick: %s)", cfg.App.TickRate))
	fmt.Println()

	err = runFrontend(ctx, cfg, st, runner, log)

	// 10. Shutdown
	if journal != nil {
		journal.Flush()
	}
	p := persist.Prefs{WindowWidth: cfg.Window.Width, WindowHeight: cfg.Window.Height}
	if id, ok := st.ActiveCamera(); ok {
		p.ActiveCamera = st.CameraName(id)
	}
	if cfg.App.Frontend == "window" && st.Screen.Width > 0 {
		p.WindowWidth, p.WindowHeight = int(st.Screen.Width), int(st.Screen.Height)
	}
	if perr := prefs.Save(p); perr != nil {
		log.Warn("prefs save failed", zap.Error(perr))
	}
	log.Info("stopped", zap.Uint64("frames", runner.Frames()))
	return err
}

func runFrontend(ctx context.Context, cfg *config.Config, st *world.State, runner *coresys.Runner, log *zap.Logger) error {
	switch cfg.App.Frontend {
	case "window":
		return window.Run(ctx, cfg.Window, cfg.App.TickRate, st, runner)
	case "terminal":
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal init: %w", err)
		}
		defer screen.Fini()
		return term.New(screen, cfg.Terminal, cfg.App.TickRate, st, runner, log).Run(ctx)
	default:
		st.Screen = world.ScreenDimensions{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}
		return runHeadless(ctx, cfg.App.TickRate, runner, log)
	}
}

// runHeadless ticks at a fixed rate; the pointer arrives over the network.
func runHeadless(ctx context.Context, tick time.Duration, runner *coresys.Runner, log *zap.Logger) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			runner.Tick(tick)
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return nil
		}
	}
}
