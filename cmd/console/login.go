package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

func newLoginCommand(opts *globalOptions) *cobra.Command {
	var creds model.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validator.New().Validate(&creds); err != nil {
				return err
			}
			auth, err := opts.client().Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "signed in as %s (role %d)\n", auth.User.Name, auth.User.RoleID)
			fmt.Fprintln(cmd.OutOrStdout(), auth.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password")
	return cmd
}
