package main

import (
	"fmt"

	"github.com/goliatone/go-eventdesk/auth"
	"github.com/goliatone/go-eventdesk/repository"
	"github.com/goliatone/go-print"
	"github.com/spf13/cobra"
)

func newUsersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUsersCreateCmd(opts))
	return cmd
}

func newUsersCreateCmd(opts *rootOptions) *cobra.Command {
	msg := auth.RegisterUserMessage{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user, e.g. the first administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			repos := repository.NewRepositoryManager(rt.db)
			handler := auth.NewRegisterUserHandler(repos.Users(), auth.NewBcryptHasher(rt.cfg.Auth.HashCost))

			user, err := handler.Execute(cmd.Context(), msg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), print.MaybePrettyJSON(user))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&msg.Username, "username", "", "login name")
	flags.StringVar(&msg.Email, "email", "", "email address")
	flags.StringVar(&msg.Password, "password", "", "plain text password")
	flags.StringVar(&msg.FirstName, "first-name", "", "first name")
	flags.StringVar(&msg.LastName, "last-name", "", "last name")
	flags.StringVar(&msg.Role, "role", auth.RoleMember, "MEMBER or ADMIN")
	flags.BoolVar(&msg.UseHashid, "hashid", false, "derive the user id from the email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
