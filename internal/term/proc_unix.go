//go:build !windows

package term

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"unsafe"
)

// setProcessGroup gives the child its own process group and, when a
// controlling terminal is available, makes that group the terminal's
// foreground group. Without the foreground handoff the child's first stdin
// read delivers SIGTTIN and stops it; with it, terminal-generated signals
// (Ctrl+C) go to the child's group instead of the dashboard's.
//
// The returned func hands the terminal's foreground role back to our own
// process group. It must run after the child is reaped and before the
// dashboard re-enters raw mode.
func setProcessGroup(cmd *exec.Cmd) func() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		// No controlling terminal (tests, pipes). The group still exists so
		// cancellation can signal the whole tree.
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		return func() {}
	}

	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:    true,
		Foreground: true,
		Ctty:       int(tty.Fd()),
	}
	return func() {
		// Taking the terminal back from a dead foreground group raises
		// SIGTTOU against our own group, whose default action is to stop us.
		signal.Ignore(syscall.SIGTTOU)
		defer signal.Reset(syscall.SIGTTOU)

		pgrp := int32(syscall.Getpgrp())
		_, _, _ = syscall.Syscall(syscall.SYS_IOCTL, tty.Fd(),
			uintptr(syscall.TIOCSPGRP), uintptr(unsafe.Pointer(&pgrp)))
		tty.Close()
	}
}

// killProcessGroup makes one termination attempt against the child's whole
// process group. A group that ignores the signal is not force-reaped.
func killProcessGroup(cmd *exec.Cmd) {
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM); err != nil {
		_ = cmd.Process.Kill()
	}
}
