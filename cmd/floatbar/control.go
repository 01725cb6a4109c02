package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/floatbar/internal/ipc"
)

func runPress(args []string) int {
	fs := flag.NewFlagSet("press", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatbar press <key>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Press a toolbar button through the daemon.")
		fmt.Fprintln(os.Stderr, "Keys: rewind, play, pause, stop, fast_forward")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "press requires exactly one <key>")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.Press(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("playback_state: %s\n", status.PlaybackState)
	return 0
}

func runVoice(args []string) int {
	fs := flag.NewFlagSet("voice", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatbar voice <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Select a configured voice and launch its command.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "voice requires exactly one <name>")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.SetVoice(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSpeed(args []string) int {
	fs := flag.NewFlagSet("speed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatbar speed <value>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Select a configured speed and launch its command.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "speed requires exactly one <value>")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.SetSpeed(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runToggle(args []string) int {
	return runSimple("toggle", "Show or hide the toolbar window.", args, func(c *ipc.Client) error {
		return c.Toggle()
	})
}

func runPanel(args []string) int {
	return runSimple("panel", "Expand or collapse the options panel.", args, func(c *ipc.Client) error {
		return c.TogglePanel()
	})
}

func runReload(args []string) int {
	return runSimple("reload", "Reload the daemon's configuration.", args, func(c *ipc.Client) error {
		return c.Reload()
	})
}

// runSimple handles the argument-free IPC subcommands.
func runSimple(name, doc string, args []string, fn func(*ipc.Client) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: floatbar %s\n\n%s\n", name, doc)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := fn(client); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
