package main

import (
	"errors"
	"fmt"

	"github.com/sitecms/internal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	userEmail    string
	userPassword string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a dashboard account",
	Long: `Creates a dashboard account unless one with the same email exists.
Defaults come from SUPER_ROOT_EMAIL and SUPER_ROOT_PASSWORD.

Example:
  sitectl create-user --email admin@example.com --password 'a long secret'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := userEmail
		if email == "" {
			email = cfg.SuperRootEmail
		}
		password := userPassword
		if password == "" {
			password = cfg.SuperRootPassword
		}

		created, err := createUser(db.DB, email, password)
		if err != nil {
			return err
		}
		if !created {
			logger.Info("user already exists", zap.String("email", db.NormalizeEmail(email)))
			return nil
		}
		logger.Info("user created", zap.String("email", db.NormalizeEmail(email)))
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "account email")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "account password (at least 8 characters)")
}

// createUser reports false when the email is already registered.
func createUser(gdb *gorm.DB, email, password string) (bool, error) {
	email = db.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, errors.New("email and password are required")
	}
	if len(password) < 8 {
		return false, errors.New("password must be at least 8 characters")
	}

	var count int64
	if err := gdb.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if err := gdb.Create(&db.User{Email: email, Password: string(hashed)}).Error; err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	return true, nil
}
