// Package main is the entry point for jenkins-manager.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/devantler-tech/jenkins-manager/internal/buildmeta"
	"github.com/devantler-tech/jenkins-manager/pkg/cli/cmd"
	"github.com/devantler-tech/jenkins-manager/pkg/utils/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := runSafely(ctx, os.Args[1:], runWithArgs, os.Stderr)

	stop()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(
	ctx context.Context,
	args []string,
	runner func(context.Context, []string) int,
	errWriter io.Writer,
) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			panicMessage := fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack())
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: panicMessage,
				Writer:  errWriter,
			})

			exitCode = 1
		}
	}()

	exitCode = runner(ctx, args)

	return exitCode
}

func runWithArgs(ctx context.Context, args []string) int {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(ctx, rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return 1
	}

	return 0
}
