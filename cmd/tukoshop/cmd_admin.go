package main

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
	"github.com/kipngetich-lab/TukoShop-App/app/repositories"
	"github.com/kipngetich-lab/TukoShop-App/config"
	"github.com/kipngetich-lab/TukoShop-App/pkg/auth"
	"github.com/kipngetich-lab/TukoShop-App/pkg/database"
)

// tukoshop admin:create
//
// Admin accounts cannot self-register through the API; this is the only way
// to create one. The username comes from ADMIN_USERNAME, the password is
// prompted without echo.
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create the admin account (username from ADMIN_USERNAME)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(ctx) //nolint:errcheck

		username := config.AdminUsername()

		fmt.Printf("Password for %q: ", username)
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if len(raw) < 6 {
			return errors.New("password must be at least 6 characters")
		}

		hash, err := auth.HashPassword(string(raw))
		if err != nil {
			return err
		}

		account := models.Account{
			Username:     username,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		if err := repositories.NewAccountRepository().Create(ctx, &account); err != nil {
			if errors.Is(err, models.ErrUsernameTaken) {
				return fmt.Errorf("account %q already exists", username)
			}
			return err
		}

		fmt.Printf("Admin account %q created.\n", username)
		return nil
	},
}
