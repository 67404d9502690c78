package users

import (
	"fmt"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/deoxyribo/limeblog/cmd/cli/output"
	"github.com/deoxyribo/limeblog/cmd/cli/root"
	"github.com/deoxyribo/limeblog/internal/auth"
	"github.com/deoxyribo/limeblog/internal/models"
	"github.com/deoxyribo/limeblog/internal/store"
)

// ==========================
// CLI Command Init
// ==========================

func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage author accounts",
		Long:  "Create and list author accounts in users.json. Accounts are never mutated by the running server.",
	}

	var username, displayName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an author account",
		Long:  "Append a new account with a fresh salt and PBKDF2 password hash.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, username, displayName)
		},
	}
	createCmd.Flags().StringVar(&username, "username", "", "account username (required)")
	createCmd.Flags().StringVar(&displayName, "display-name", "", "name shown as post author")
	createCmd.MarkFlagRequired("username")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List author accounts",
		RunE:  runList,
	}

	usersCmd.AddCommand(createCmd, listCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// Create User
// ==========================

func runCreate(cmd *cobra.Command, username, displayName string) error {
	users := store.NewUserStore(afero.NewOsFs(), root.DataDir)

	existing, err := users.List()
	if err != nil {
		return err
	}
	for _, u := range existing {
		if u.Username == username {
			return fmt.Errorf("user %q already exists", username)
		}
	}

	cmd.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	cmd.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return err
	}
	existing = append(existing, models.User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: auth.HashPassword(string(raw), salt),
		Salt:         salt,
	})
	if err := users.Save(existing); err != nil {
		return err
	}

	cmd.Printf("Created user %s\n", username)
	return nil
}

// ==========================
// List Users
// ==========================

func runList(cmd *cobra.Command, args []string) error {
	users := store.NewUserStore(afero.NewOsFs(), root.DataDir)

	all, err := users.List()
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(all))
	for _, u := range all {
		rows = append(rows, []interface{}{u.Username, u.DisplayName})
	}
	output.RenderTable([]string{"Username", "Display Name"}, rows)
	return nil
}
