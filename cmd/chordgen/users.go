package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dt-hbtn/chordgen-api/internal/database"
	"github.com/dt-hbtn/chordgen-api/internal/models"
	"github.com/spf13/cobra"
)

var addUserDatabaseURL string

func init() {
	addUserCmd.Flags().StringVar(&addUserDatabaseURL, "database-url", "", "postgres DSN (default $DATABASE_URL)")
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(addUserCmd)
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [PASSWORD]",
	Short: "Prints a bcrypt hash for BASIC_AUTH_USERS",
	Long: `Prints a bcrypt hash of PASSWORD, or of the first line of stdin when no
argument is given. Use it as NAME:HASH in BASIC_AUTH_USERS.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFrom(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		hash, err := models.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var addUserCmd = &cobra.Command{
	Use:   "add-user USERNAME [PASSWORD]",
	Short: "Creates or updates an API user in the database",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := addUserDatabaseURL
		if url == "" {
			url = os.Getenv("DATABASE_URL")
		}
		if url == "" {
			return errors.New("no database: pass --database-url or set DATABASE_URL")
		}

		password, err := passwordFrom(cmd.InOrStdin(), args[1:])
		if err != nil {
			return err
		}

		db, err := database.Connect(url)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		user, err := database.UpsertUser(db, args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %s saved (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func passwordFrom(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}
