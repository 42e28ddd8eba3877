// Command cviz renders Strengths Compass score charts: radar charts, the
// pairwise synergy matrix and the difference heatmap, as SVG, PNG or JSON
// scenes, plus a markdown report bundle and a terminal preview.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vanderheijden86/compassviz/pkg/debug"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp(os.Stdout, os.Stderr).rootCmd().ExecuteContext(ctx)
	stop()
	debug.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
