package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show GitHub auth status and print a GH_TOKEN export line",
	Long: `Show the host's GitHub auth status via the gh CLI and print an export
line for the active token. The same token is what den injects into
sandboxes as GH_TOKEN at launch.

With --refresh, re-runs the gh device-code flow first; --scope adds
scopes to the refreshed token.`,
	RunE: runToken,
}

var (
	tokenRefresh bool
	tokenScopes  []string
)

func init() {
	tokenCmd.Flags().BoolVar(&tokenRefresh, "refresh", false, "Re-run the gh auth flow before printing")
	tokenCmd.Flags().StringArrayVar(&tokenScopes, "scope", nil, "Additional scope to request with --refresh (repeatable)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tokens := application.Tokens

	if tokenRefresh {
		logInfo("Refreshing GitHub credentials...")
		if err := tokens.Refresh(ctx, tokenScopes...); err != nil {
			return err
		}
	}

	status, err := tokens.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Println(status)

	tok, err := tokens.Token(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("export GH_TOKEN=%s\n", tok)
	return nil
}
