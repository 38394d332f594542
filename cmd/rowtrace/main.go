// SPDX-License-Identifier: MIT

// Command rowtrace solves small linear systems step by step and keeps
// undo/redo sessions of manual row operations.
//
// Usage:
//
//	rowtrace solve '[[1,2,3,14],[2,5,6,30],[3,1,1,8]]'
//	rowtrace solve --play --save '[[2,1,5],[1,-1,1]]'
//	rowtrace sessions list
//	rowtrace apply <id> add 3 1 -2
//	rowtrace undo <id>
//
// Settings come from ROWTRACE_* environment variables (see package config).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: stdout, stderr: stderr}
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return 0
}
