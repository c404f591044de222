package main

import (
	"fmt"

	"github.com/cmlabs-hris/roster-backend-go/internal/config"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/postgresql"
	serviceUser "github.com/cmlabs-hris/roster-backend-go/internal/service/user"
	"github.com/spf13/cobra"
)

func newCreateUserCmd() *cobra.Command {
	var (
		req   user.CreateUserRequest
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user that roster rows can be matched against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = string(user.RoleEmployee)
			if admin {
				req.Role = string(user.RoleAdmin)
			}

			cfg, err := config.Read()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			created, err := serviceUser.NewUserService(postgresql.NewUserRepository(db)).Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (%s)\n", created.Role, created.Email, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name as written in the roster")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name as written in the roster")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password (at least 8 characters)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant the admin role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
