package main

import (
	"os"

	"github.com/focuslog/focuslog/app"
	"github.com/focuslog/focuslog/internal/osutil"
	"github.com/focuslog/focuslog/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		report.Quit(err)
	}

	os.Exit(int(osutil.ExitOK))
}
