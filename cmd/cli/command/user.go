package command

import (
	"context"
	"fmt"

	"editorial/database"
	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
	"editorial/internal/http-api/service"
	"editorial/internal/session"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with any role",
	Long:  `Create an account. This is the way to bootstrap the first administrator.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		roleFlag, _ := cmd.Flags().GetString("role")

		role, err := models.ParseRole(roleFlag)
		if err != nil {
			return err
		}

		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		ctx := context.Background()
		users := repository.NewUserRepository(db)
		// registration rules apply; the session store is never touched here
		auth := service.NewAuthService(users, session.NewMemoryStore(), cfg)

		user, err := auth.Register(ctx, name, email, password)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if role != user.Role {
			if err := users.UpdateRole(ctx, user.ID, role); err != nil {
				return fmt.Errorf("set role: %w", err)
			}
		}

		success("Created %s (%s) with id %d", user.Email, role, user.ID)
		return nil
	},
}

var userRoleCmd = &cobra.Command{
	Use:   "role <email> <role>",
	Short: "Change the role of an existing account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := models.ParseRole(args[1])
		if err != nil {
			return err
		}

		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		ctx := context.Background()
		users := repository.NewUserRepository(db)
		user, err := users.FindByEmail(ctx, service.NormalizeEmail(args[0]))
		if err != nil {
			return fmt.Errorf("find %s: %w", args[0], err)
		}
		if err := users.UpdateRole(ctx, user.ID, role); err != nil {
			return err
		}

		success("%s is now %s", user.Email, role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userRoleCmd)

	userCreateCmd.Flags().StringP("name", "n", "", "Full name")
	userCreateCmd.Flags().StringP("email", "e", "", "Email address")
	userCreateCmd.Flags().StringP("password", "p", "", "Password, at least 6 characters")
	userCreateCmd.Flags().StringP("role", "r", string(models.RoleAuthor), "author, staff, reviewer or admin")
	userCreateCmd.MarkFlagRequired("name")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")
}
