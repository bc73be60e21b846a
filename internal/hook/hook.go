// Package hook spawns the shell processes that perform every mutating
// action. Hooks learn the session layout through environment variables and
// talk back over the message pipe.
package hook

import (
	"fmt"
	"os"
	"os/exec"

	"xplr/internal/app"
	"xplr/internal/errs"
	"xplr/internal/log"
	"xplr/internal/msg"
	"xplr/internal/pipe"
	"xplr/internal/runtime"
)

// Env assembles the environment contract for a child process: the parent
// environment plus every XPLR_* variable.
func Env(a *app.App, s *pipe.Session, rt runtime.Runtime) []string {
	focusPath := ""
	focusIndex := 0
	if n := a.FocusedNode(); n != nil {
		focusPath = n.AbsolutePath
		focusIndex = a.DirectoryBuffer().Focus
	}
	return append(os.Environ(),
		"XPLR_PIPE_MSG_IN="+s.MsgIn,
		"XPLR_PIPE_SELECTION_OUT="+s.SelectionOut,
		"XPLR_PIPE_RESULT_OUT="+s.ResultOut,
		"XPLR_PIPE_LOGS_OUT="+s.LogsOut,
		"XPLR_PIPE_DIRECTORY_NODES_OUT="+s.DirectoryNodesOut,
		"XPLR_PIPE_GLOBAL_HELP_MENU_OUT="+s.GlobalHelpMenuOut,
		"XPLR_PIPE_FOCUS_PATH="+s.FocusOut,
		"XPLR_FOCUS_PATH="+focusPath,
		fmt.Sprintf("XPLR_FOCUS_INDEX=%d", focusIndex),
		"XPLR_PWD="+a.Pwd(),
		"XPLR_INPUT_BUFFER="+a.InputBuffer(),
		"XPLR_SESSION_PATH="+s.Path,
		"XPLR_APP_VERSION="+rt.Version,
	)
}

// Command builds the foreground command for a Call or BashExec effect. The
// caller hands it the terminal and waits.
func Command(call msg.CallArg, a *app.App, s *pipe.Session, rt runtime.Runtime) *exec.Cmd {
	cmd := exec.Command(call.Command, call.Args...)
	cmd.Dir = a.Pwd()
	cmd.Env = Env(a, s, rt)
	return cmd
}

// RunSilent spawns a background process with its stdio discarded. The
// parent does not wait; a failed exit is logged when it surfaces.
func RunSilent(call msg.CallArg, a *app.App, s *pipe.Session, rt runtime.Runtime) error {
	cmd := exec.Command(call.Command, call.Args...)
	cmd.Dir = a.Pwd()
	cmd.Env = Env(a, s, rt)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return errs.Wrap(errs.Hook, err, "cannot spawn "+call.Command)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warnf("hook: %s exited: %v", call.Command, err)
		}
	}()
	return nil
}
