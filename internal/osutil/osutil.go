// Package osutil holds operating system names and process exit codes
package osutil

const Windows = "windows"

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)
