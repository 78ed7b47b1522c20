package main

import (
	"fmt"
	"os"

	"github.com/fossas/activedeps/cmd/activedeps/app"
	"github.com/fossas/activedeps/errors"
)

func main() {
	err := app.New().Run(os.Args)
	if err != nil {
		fmt.Fprint(os.Stderr, errors.Report(err))
		os.Exit(1)
	}
}
