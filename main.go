package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/PolarWolf314/paks/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()

	if err != nil {
		if !cmd.Reported(err) {
			fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
