package cmd

import (
	"errors"
	"fmt"
	"time"

	"kickstreet/internal/data/repository"
	"kickstreet/internal/usecase"
	"kickstreet/pkg/database"
	"kickstreet/pkg/mailer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var adminFlags struct {
	name     string
	email    string
	phone    string
	password string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a verified admin account, or promote an existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminFlags.email == "" {
			return errors.New("--email is required")
		}

		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}

		repos := repository.NewRepository(db, logger)
		users := usecase.NewUserService(repos, config, usecase.Deps{
			Mailer: mailer.NewLogMailer(logger, false),
			Clock:  time.Now,
		}, logger)

		admin, err := users.EnsureAdmin(cmd.Context(), adminFlags.name, adminFlags.email, adminFlags.phone, adminFlags.password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin ready: %s (%s)\n", admin.Email, admin.ID)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.name, "name", "Admin", "display name for a new account")
	f.StringVar(&adminFlags.email, "email", "", "admin email")
	f.StringVar(&adminFlags.phone, "phone", "", "phone number for a new account")
	f.StringVar(&adminFlags.password, "password", "", "password for a new account")
}
