// SPDX-License-Identifier: MIT

// Command gaze-pca fits PCA models on eye images, face images or 2D points,
// reports how many components retain a variance target, writes
// reconstruction montages and runs the interactive coefficient viewer.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, os.Stdout, os.Stderr)
	parser := newParser(a)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// newParser wires the global options and the commands onto a go-flags parser.
// Errors, command failures included, are printed by the parser.
func newParser(a *app) *flags.Parser {
	parser := flags.NewParser(&a.opts, flags.Default)
	parser.CommandHandler = a.handle

	mustAddCommand(parser, "analyze", "Find k for a retained-variance target",
		"Fits the model, prints the smallest k whose retained variance meets --target and writes the shortfall plot. "+
			"For 2D points it also plots the principal axes and the rank-1 reconstruction.",
		&analyzeCommand{app: a})
	mustAddCommand(parser, "reconstruct", "Reconstruct samples with k components",
		"Fits the model, reconstructs every sample with --k components, reports the mean squared error "+
			"and writes montages of originals, principal directions and reconstructions.",
		&reconstructCommand{app: a})
	mustAddCommand(parser, "view", "Explore one sample with coefficient sliders",
		"Opens an OpenCV window with one slider per leading coefficient of --sample (build with -tags gocv).",
		&viewCommand{app: a})

	return parser
}

func mustAddCommand(p *flags.Parser, name, short, long string, data interface{}) {
	if _, err := p.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}
