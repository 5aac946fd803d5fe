package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Auction session commands",
	}

	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionTickCmd())
	cmd.AddCommand(newSessionBuyCmd())
	cmd.AddCommand(newSessionJokerCmd())
	cmd.AddCommand(newSessionWinnerCmd())
	cmd.AddCommand(newSessionRemoveCmd())

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show the session state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionTickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tick <session-id>",
		Short: "Advance the price clock by one tick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/tick", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionBuyCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "buy <session-id>",
		Short: "Buy the current item at the current price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": playerID}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/purchase", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Buying player id (required)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newSessionJokerCmd() *cobra.Command {
	var playerID string
	var value int

	cmd := &cobra.Command{
		Use:   "joker <session-id>",
		Short: "Buy the joker, betting on the next price drop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_id": playerID, "value": value}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/joker", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Buying player id (required)")
	cmd.Flags().IntVar(&value, "value", 0, "Guessed price drop, 1-10 (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newSessionWinnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winner <session-id>",
		Short: "Show the winner, or the current leader if still running",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Winner

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s/winner", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session removed")
			return nil
		},
	}
}
