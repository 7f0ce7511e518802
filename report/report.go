// Package report prints user-facing outcomes of a command
package report

import (
	"errors"
	"os"

	"github.com/pterm/pterm"

	"github.com/focuslog/focuslog/internal/osutil"
	"github.com/focuslog/focuslog/store"
)

// Error prints err, adding a hint for the single-instance lock.
func Error(err error) {
	pterm.Error.Println(err)

	if errors.Is(err, store.ErrFocusRunning) {
		pterm.Info.Println("'focuslog status' works while the timer is running")
	}
}

// Quit prints err and exits with a failure code.
func Quit(err error) {
	Error(err)
	os.Exit(int(osutil.ExitError))
}
