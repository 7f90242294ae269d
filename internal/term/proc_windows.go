//go:build windows

package term

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) func() { return func() {} }

// killProcessGroup kills the direct child only; process groups are not
// addressable this way on Windows.
func killProcessGroup(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
}
