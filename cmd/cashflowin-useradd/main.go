package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cashflowin/internal/auth"
	"cashflowin/internal/cli"
	"cashflowin/internal/store"
)

// Creates or updates a login account. Passwords are hashed with argon2id
// before they reach the database.
func main() {
	name := flag.String("name", "", "account name (required)")
	password := flag.String("password", "", "plaintext password to hash (required)")
	role := flag.String("role", "user", "account role")
	inactive := flag.Bool("inactive", false, "create the account disabled")
	flag.Parse()

	if *name == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: cashflowin-useradd -name NAME -password PASSWORD [-role ROLE] [-inactive]")
		os.Exit(2)
	}

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user := store.User{
		Name:         *name,
		PasswordHash: hash,
		Role:         *role,
		Active:       !*inactive,
	}
	if err := repo.UpsertUser(ctx, user); err != nil {
		logger.Error("Failed to save user", "error", err, "user", *name)
		os.Exit(1)
	}

	logger.Info("User saved", "user", *name, "role", *role, "active", !*inactive)
}
