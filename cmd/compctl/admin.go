package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/icpcsp/compreg/cmd/app"
	"github.com/icpcsp/compreg/internal/api/handler/v1/request"
	"github.com/icpcsp/compreg/internal/db"
	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/repository"
	"github.com/icpcsp/compreg/internal/repository/dao"
	"github.com/icpcsp/compreg/internal/service"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
	seedFile      string
)

// migrateCmd applies the gorm schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, postgresDB, err := app.Bootstrap(configPath)
		if err != nil {
			return err
		}
		defer db.Close(postgresDB)

		if err := dao.InitTables(postgresDB); err != nil {
			return fmt.Errorf("dao.InitTables -> %w", err)
		}
		zap.L().Info("schema migrated")
		return nil
	},
}

// seedUniversitiesCmd inserts universities given as arguments or one per line in --file
var seedUniversitiesCmd = &cobra.Command{
	Use:   "seed-universities [name...]",
	Short: "Insert universities that do not exist yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if seedFile != "" {
			fromFile, err := readLines(seedFile)
			if err != nil {
				return err
			}
			names = append(names, fromFile...)
		}
		if len(names) == 0 {
			return errors.New("no universities given")
		}

		_, postgresDB, err := app.Bootstrap(configPath)
		if err != nil {
			return err
		}
		defer db.Close(postgresDB)

		repo := repository.NewUserRepository(dao.NewUserDAO(postgresDB))
		created := 0
		for _, name := range names {
			_, err := repo.CreateUniversity(cmd.Context(), domain.University{Name: name})
			if errors.Is(err, repository.ErrUniversityNameExists) {
				continue
			}
			if err != nil {
				return fmt.Errorf("repo.CreateUniversity(%q) -> %w", name, err)
			}
			created++
		}

		zap.L().Info("universities seeded", zap.Int("created", created), zap.Int("given", len(names)))
		return nil
	},
}

// createAdminCmd creates a system_admin user
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a system administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminEmail == "" || adminName == "" {
			return errors.New("--email and --name are required")
		}
		if adminPassword == "" {
			adminPassword = os.Getenv("COMPCTL_ADMIN_PASSWORD")
		}
		if !request.ValidPassword(adminPassword) {
			return errors.New("password must be at least 8 characters and contain 1 letter, 1 number and 1 symbol")
		}

		_, postgresDB, err := app.Bootstrap(configPath)
		if err != nil {
			return err
		}
		defer db.Close(postgresDB)

		svc := service.NewAuthService(repository.NewUserRepository(dao.NewUserDAO(postgresDB)))
		user, err := svc.CreateSystemAdmin(cmd.Context(), domain.User{
			Email:    adminEmail,
			Name:     adminName,
			Password: adminPassword,
		})
		if err != nil {
			return fmt.Errorf("svc.CreateSystemAdmin -> %w", err)
		}

		zap.L().Info("system admin created", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
		return nil
	},
}

func init() {
	seedUniversitiesCmd.Flags().StringVarP(&seedFile, "file", "f", "", "File with one university name per line")

	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Admin display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (or set COMPCTL_ADMIN_PASSWORD)")
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open -> %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sc.Scan -> %w", err)
	}
	return lines, nil
}
