package cli

import (
	"context"
	"time"

	"github.com/goddivor/Orinu-hub/internal/domain"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Session commands",
}

var sessionWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow session changes until interrupted",
	Long: `Print every session change: the initial restore, sign-ins from other
commands and token expiry.

Examples:
  orinu session watch
  orinu session watch --json --timeout 10m`,
	Args: cobra.NoArgs,
	RunE: runSessionWatch,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionWatchCmd)

	sessionWatchCmd.Flags().Bool("json", false, "print one JSON object per change")
	sessionWatchCmd.Flags().Duration("timeout", 0, "stop after this long (0 waits for Ctrl-C)")
}

func runSessionWatch(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	c, err := components()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	states := make(chan domain.SessionState, 16)
	unsubscribe := c.Session.Subscribe(func(state domain.SessionState) {
		select {
		case states <- state:
		default:
			log.Warn("session watcher is lagging, dropped a change", "status", state.Status.String())
		}
	})
	defer unsubscribe()

	if err := c.Session.Start(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case state := <-states:
			if jsonOutput {
				if err := printer.JSON(newSessionView(state)); err != nil {
					return err
				}
				continue
			}
			line := time.Now().Format(time.TimeOnly) + " " + printer.StatusBadge(state.Status.String())
			if state.Authenticated() {
				line += " " + displayName(state.Identity)
			}
			printer.Print("%s", line)
		}
	}
}
