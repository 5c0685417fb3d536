package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Spawner starts an application command without waiting for it.
type Spawner interface {
	Spawn(command string) error
}

// ShellSpawner runs commands through a POSIX shell in their own session, so
// they outlive the launcher.
type ShellSpawner struct {
	// Shell defaults to /bin/sh.
	Shell string
}

func (s ShellSpawner) Spawn(command string) error {
	shell := s.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell, "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if home, err := os.UserHomeDir(); err == nil {
		cmd.Dir = home
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn %q: %w", command, err)
	}
	// Not waited on; the child is reparented once the launcher exits.
	return cmd.Process.Release()
}
