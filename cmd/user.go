package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sivahkrishna/indian-movie-recommender/internal/audit"
	"github.com/sivahkrishna/indian-movie-recommender/internal/users"
	"github.com/sivahkrishna/indian-movie-recommender/internal/validation"
)

var (
	userAddAdmin    bool
	makeAdminRevoke bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username> <email>",
	Short: "Create a user account, prompting for the password",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		reg := users.Registration{Username: strings.TrimSpace(args[0]), Email: strings.TrimSpace(args[1])}

		prompt := promptui.Prompt{
			Label: "Password",
			Mask:  '*',
			Validate: func(s string) error {
				if len(s) < 8 {
					return errors.New("password must be at least 8 characters")
				}
				return nil
			},
		}
		reg.Password, err = prompt.Run()
		if err != nil {
			return fmt.Errorf("password: %w", err)
		}
		if err := validation.ValidateStruct(reg); err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := users.NewStore(database)
		u, err := store.Create(cmd.Context(), reg.Username, reg.Email, reg.Password)
		if err != nil {
			return err
		}
		trail := audit.NewStore(database)
		trail.Record(cmd.Context(), audit.Entry{Actor: audit.ActorCLI, Action: audit.ActionUserCreated, Subject: u.Email})
		if userAddAdmin {
			if err := store.SetAdmin(cmd.Context(), u.Email, true); err != nil {
				return err
			}
			trail.Record(cmd.Context(), audit.Entry{Actor: audit.ActorCLI, Action: audit.ActionAdminGranted, Subject: u.Email})
		}
		fmt.Printf("Created user %s <%s> (id %d, admin=%t)\n", u.Username, u.Email, u.ID, userAddAdmin)
		return nil
	},
}

var userMakeAdminCmd = &cobra.Command{
	Use:   "make-admin <email>",
	Short: "Grant (or with --revoke, remove) admin rights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		email := strings.TrimSpace(args[0])
		err = users.NewStore(database).SetAdmin(cmd.Context(), email, !makeAdminRevoke)
		if errors.Is(err, users.ErrNotFound) {
			return fmt.Errorf("no user with email %s", email)
		}
		if err != nil {
			return err
		}

		action := audit.ActionAdminGranted
		if makeAdminRevoke {
			action = audit.ActionAdminRevoked
		}
		audit.NewStore(database).Record(cmd.Context(), audit.Entry{Actor: audit.ActorCLI, Action: action, Subject: email})

		if makeAdminRevoke {
			fmt.Printf("%s is no longer an admin\n", email)
		} else {
			fmt.Printf("%s is now an admin\n", email)
		}
		return nil
	},
}

func init() {
	userAddCmd.Flags().BoolVar(&userAddAdmin, "admin", false, "Grant admin rights to the new user")
	userMakeAdminCmd.Flags().BoolVar(&makeAdminRevoke, "revoke", false, "Remove admin rights instead of granting them")
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userMakeAdminCmd)
	rootCmd.AddCommand(userCmd)
}
