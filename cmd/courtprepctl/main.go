// courtprepctl is the operator CLI. It opens the configured store directly,
// so beta access can be granted or revoked without touching the database by
// hand.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/courtprep/backend/chronologyservice"
	"github.com/courtprep/backend/internal/config"
	"github.com/courtprep/backend/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "courtprepctl",
	Short: "Operator CLI for the chronology service store",
}

func openStore() (store.Store, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	st, _, err := chronologyservice.NewStore(cfg)
	return st, err
}

func main() {
	betaCmd := &cobra.Command{
		Use:   "beta",
		Short: "Manage private-beta access",
	}

	grantCmd := &cobra.Command{
		Use:   "grant <user-id>",
		Short: "Grant a user private-beta access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			if err := st.Profiles().SetPrivateBeta(context.Background(), args[0], true); err != nil {
				return err
			}
			fmt.Printf("granted private beta to %s\n", args[0])
			return nil
		},
	}

	revokeCmd := &cobra.Command{
		Use:   "revoke <user-id>",
		Short: "Revoke a user's private-beta access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			if err := st.Profiles().SetPrivateBeta(context.Background(), args[0], false); err != nil {
				return err
			}
			fmt.Printf("revoked private beta from %s\n", args[0])
			return nil
		},
	}
	betaCmd.AddCommand(grantCmd, revokeCmd)
	rootCmd.AddCommand(betaCmd)

	casesCmd := &cobra.Command{
		Use:   "cases <user-id>",
		Short: "List a user's cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			list, err := st.Cases().List(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CASE ID\tCREATED\tTITLE")
			for _, c := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.CaseID, c.CreationTime.Format("2006-01-02 15:04"), c.Title)
			}
			return w.Flush()
		},
	}
	rootCmd.AddCommand(casesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
