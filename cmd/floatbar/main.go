package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/floatbar/internal/config"
	"github.com/1broseidon/floatbar/internal/ipc"
	"github.com/1broseidon/floatbar/internal/tui"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: floatbar daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: floatbar daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "press":
		os.Exit(runPress(os.Args[2:]))
	case "voice":
		os.Exit(runVoice(os.Args[2:]))
	case "speed":
		os.Exit(runSpeed(os.Args[2:]))
	case "toggle":
		os.Exit(runToggle(os.Args[2:]))
	case "panel":
		os.Exit(runPanel(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: floatbar <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the floatbar daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  press <key>         Press a toolbar button (play, pause, stop, ...)")
	fmt.Fprintln(w, "  voice <name>        Select a configured voice")
	fmt.Fprintln(w, "  speed <value>       Select a configured speed")
	fmt.Fprintln(w, "  toggle              Show or hide the toolbar window")
	fmt.Fprintln(w, "  panel               Expand or collapse the options panel")
	fmt.Fprintln(w, "  reload              Reload the daemon's configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive control panel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'floatbar <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatbar status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printStatus(status)
	return 0
}

func printStatus(status *ipc.StatusData) {
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("playback_state: %s\n", status.PlaybackState)
	fmt.Printf("position:       %d,%d\n", status.X, status.Y)
	fmt.Printf("visible:        %v\n", status.Visible)
	fmt.Printf("panel_expanded: %v\n", status.PanelExpanded)
	if status.Voice != "" {
		fmt.Printf("voice:          %s\n", status.Voice)
	}
	if status.Speed != "" {
		fmt.Printf("speed:          %s\n", status.Speed)
	}
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  floatbar config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  floatbar config print [--path PATH] [--effective|--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/floatbar/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.LoadWithSources()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/floatbar/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if *printDefaults {
			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Print(string(data))
			return 0
		}

		_ = printEffective // default
		var res *config.LoadResult
		var err error
		if *path == "" {
			res, err = config.LoadWithSources()
		} else {
			res, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data, err := yaml.Marshal(res.Config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/floatbar/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: floatbar tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive control panel for the daemon.")
		fmt.Fprintln(os.Stderr, "Works as an offline config browser when the daemon is not running.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓     Navigate buttons")
		fmt.Fprintln(os.Stderr, "  Enter, Space Press selected button (daemon)")
		fmt.Fprintln(os.Stderr, "  v/V          Cycle voice forward/backward (daemon)")
		fmt.Fprintln(os.Stderr, "  s/S          Cycle speed forward/backward (daemon)")
		fmt.Fprintln(os.Stderr, "  t            Show/hide the toolbar window (daemon)")
		fmt.Fprintln(os.Stderr, "  p            Expand/collapse the options panel (daemon)")
		fmt.Fprintln(os.Stderr, "  e            Edit config in $EDITOR")
		fmt.Fprintln(os.Stderr, "  r            Reload config (and daemon when running)")
		fmt.Fprintln(os.Stderr, "  q, Esc       Quit")
		fmt.Fprintln(os.Stderr, "  Ctrl+C       Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	t := tui.New(*path)
	if err := t.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
