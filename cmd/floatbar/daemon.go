package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/floatbar/internal/command"
	"github.com/1broseidon/floatbar/internal/config"
	"github.com/1broseidon/floatbar/internal/gesture"
	"github.com/1broseidon/floatbar/internal/hotkeys"
	"github.com/1broseidon/floatbar/internal/ipc"
	"github.com/1broseidon/floatbar/internal/platform"
	"github.com/1broseidon/floatbar/internal/statefeed"
	"github.com/1broseidon/floatbar/internal/toolbar"
	"github.com/1broseidon/floatbar/internal/x11"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (%d commands, toggle hotkey: %s)", len(cfg.Commands), cfg.ToggleHotkey)

	// Connect to display server
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	// Create the toolbar window at its configured position
	width, height := toolbar.CollapsedSize(cfg)
	surface, err := backend.CreateToolbar(
		cfg.Appearance.InitialX, cfg.Appearance.InitialY,
		width, height, cfg.Appearance.Opacity)
	if err != nil {
		log.Fatalf("Failed to create toolbar window: %v", err)
	}

	log.Println("floatbar daemon started successfully")

	// The state feed is created after the controller; the notify closure
	// sees it through this variable.
	var feed *statefeed.Server

	ctrl := toolbar.New(toolbar.Options{
		Config:   cfg,
		Surface:  surface,
		Launcher: command.Executor{},
		Quit:     backend.Quit,
		Notify: func(event string, data any) {
			if feed == nil {
				return
			}
			if st, ok := data.(toolbar.Status); ok {
				feed.Broadcast(event, ipc.StatusFromController(st))
				return
			}
			feed.Broadcast(event, data)
		},
	})
	defer ctrl.Destroy()

	// Route X events for the toolbar window into the controller.
	connectToolbarEvents(backend, surface, ctrl)

	// Setup hotkey handler
	hotkeyHandler := hotkeys.NewHandler(backend)
	if cfg.ToggleHotkey != "" {
		if err := hotkeyHandler.RegisterFunc(cfg.ToggleHotkey, ctrl.ToggleVisible); err != nil {
			log.Printf("Warning: Failed to register toggle hotkey: %v", err)
		} else {
			log.Printf("Toggle hotkey registered: %s", cfg.ToggleHotkey)
		}
	}
	if cfg.PanelHotkey != "" {
		if err := hotkeyHandler.RegisterFunc(cfg.PanelHotkey, ctrl.TogglePanel); err != nil {
			log.Printf("Warning: Failed to register panel hotkey: %v", err)
		} else {
			log.Printf("Panel hotkey registered: %s", cfg.PanelHotkey)
		}
	}

	// Create config reload channel
	reloadChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(cfg, ctrl, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	// Optional WebSocket state feed
	if cfg.StatusListen != "" {
		feedLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(cfg.LogLevel),
		}))
		feed = statefeed.NewServer(feedLogger, cfg.StatusListen, func() any {
			return ipc.StatusFromController(ctrl.Status())
		})
		feed.Start()
		defer feed.Stop()
	}

	// Assert the initial voice and speed selections
	ctrl.ApplyCurrent()

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	// Handle signals and config reloads
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					newCfg, err := config.Load()
					if err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}

					ipcServer.UpdateConfig(newCfg)
					ctrl.Reload(newCfg)
					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down floatbar daemon...")
					backend.Quit()
					return
				}

			case <-reloadChan:
				// Config was reloaded via IPC; the server already pushed it
				// into the controller. Announce it on the feed.
				if feed != nil {
					feed.Broadcast("config_reloaded", ipc.StatusFromController(ctrl.Status()))
				}
			}
		}
	}()

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	backend.EventLoop()
}

// connectToolbarEvents attaches X event callbacks for the toolbar window.
func connectToolbarEvents(backend *platform.LinuxBackend, surface platform.Toolbar, ctrl *toolbar.Controller) {
	tw, ok := surface.(*x11.ToolbarWindow)
	if !ok {
		log.Fatalf("toolbar surface is not an X11 window")
	}
	xu := backend.XUtil()
	win := tw.Window()

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		ctrl.HandleButtonPress(int(ev.RootX), int(ev.RootY), gesture.Button(ev.Detail))
	}).Connect(xu, win)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		ctrl.HandleButtonRelease(int(ev.RootX), int(ev.RootY), gesture.Button(ev.Detail))
	}).Connect(xu, win)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		ctrl.HandleMotion(int(ev.RootX), int(ev.RootY))
	}).Connect(xu, win)

	xevent.LeaveNotifyFun(func(xu *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		ctrl.HandleLeave()
	}).Connect(xu, win)

	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			ctrl.HandleExpose()
		}
	}).Connect(xu, win)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
