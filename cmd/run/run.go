/*
Copyright © 2022 NAME HERE <EMAIL ADDRESS>
*/
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xiaomi388/templater/pkg/app"
	"github.com/xiaomi388/templater/pkg/clipboard"
	"github.com/xiaomi388/templater/pkg/presence"
	"github.com/xiaomi388/templater/pkg/session"
)

var hidden bool

// consoleGrace is how long shutdown waits for an open prompt to give the
// terminal back.
const consoleGrace = 200 * time.Millisecond

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "open the interactive templates window",
	Long: `Open the interactive templates window.

The window can be hidden from its menu. While hidden, templater keeps running
in the background; send SIGUSR1 to show it again and SIGINT or SIGTERM to
quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if hidden && !presence.CanShow() {
			return errors.New("--hidden needs a show signal, which this platform does not have")
		}

		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		loop := session.NewLoop(a.Store, clipboard.System{}, a.Log, !hidden)

		var opts []presence.Option
		if a.Config.Watch {
			opts = append(opts, presence.WithWatch(a.Store.Path()))
		}
		p := presence.New(loop, a.Log, opts...)
		p.Start(ctx)
		defer p.Stop()

		var consoleOpts []session.ConsoleOption
		if !presence.CanShow() {
			consoleOpts = append(consoleOpts, session.WithoutHide())
		}
		console := session.NewConsole(loop, session.SurveyPrompter{}, cmd.OutOrStdout(), a.Config.Display.Width, consoleOpts...)

		restoreTerminal := session.SaveTerminal(os.Stdin)
		consoleDone := make(chan struct{})
		go func() {
			defer close(consoleDone)
			if err := console.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.Log.WithError(err).Error("console stopped")
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				loop.Post(session.IntentQuit)
			}
		}()

		if hidden {
			fmt.Fprintf(cmd.OutOrStdout(), "templater is running in the background (pid %d).\n", os.Getpid())
		}
		a.Log.Info("starting application")

		runErr := loop.Run(ctx)
		cancel()

		// A quit signal can arrive while a prompt holds the terminal.
		select {
		case <-consoleDone:
		case <-time.After(consoleGrace):
			if err := restoreTerminal(); err != nil {
				a.Log.WithError(err).Warn("failed to restore terminal")
			}
		}

		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			return runErr
		}
		return nil
	},
}

func init() {
	RunCmd.Flags().BoolVar(&hidden, "hidden", false, "start with the window hidden")
}
