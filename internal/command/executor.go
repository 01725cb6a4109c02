// Package command launches user-configured shell commands.
package command

import (
	"log"
	"os/exec"
	"strings"
)

// Provider resolves a command key to its configured shell command line.
type Provider interface {
	Command(key string) (string, bool)
}

// Launcher runs a command line without reporting the result to the caller.
type Launcher interface {
	Launch(cmdline string)
}

// Executor launches command lines through the shell, fire-and-forget.
// Failures are logged and never surfaced; the toolbar must stay responsive
// whatever the user configured.
type Executor struct{}

// Launch starts `/bin/sh -c cmdline` and returns immediately. Empty or
// whitespace-only command lines are skipped.
func (Executor) Launch(cmdline string) {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		log.Printf("command: no command configured, nothing to launch")
		return
	}

	cmd := exec.Command("/bin/sh", "-c", cmdline)
	if err := cmd.Start(); err != nil {
		log.Printf("command: failed to start %q: %v", cmdline, err)
		return
	}
	log.Printf("command: launched %q (pid %d)", cmdline, cmd.Process.Pid)

	// Reap the child so it never lingers as a zombie.
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("command: %q exited: %v", cmdline, err)
		}
	}()
}
