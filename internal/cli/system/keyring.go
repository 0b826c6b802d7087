package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/keyring"
	"github.com/Tholomir/ChronoRex/internal/storage"
	"github.com/Tholomir/ChronoRex/internal/storage/postgres"
)

// DBConnectionSetCmd stores the PostgreSQL connection string in the OS keyring
type DBConnectionSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *DBConnectionSetCmd) Run(ctx *cli.Context) error {
	target := cli.Target{Value: cmd.ConnectionString, Source: cli.SourceKeyring}
	if !target.IsPostgres() {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so a password is acceptable here
		fmt.Println(cli.RenderWarning("Connection string contains embedded credentials; it will be stored as-is in the OS keyring."))
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	fmt.Println("✓ Connection string stored successfully in OS keyring")
	fmt.Println("  chronorex will use it whenever --db is not given")
	return nil
}

// DBConnectionGetCmd prints the stored connection string with any password masked
type DBConnectionGetCmd struct{}

func (cmd *DBConnectionGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'chronorex db-connection set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println("Connection string retrieved from keyring:")
	fmt.Println(maskPassword(connStr))
	return nil
}

// DBConnectionDeleteCmd removes the stored connection string
type DBConnectionDeleteCmd struct{}

func (cmd *DBConnectionDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// DBConnectionStatusCmd checks the availability of the OS keyring
type DBConnectionStatusCmd struct{}

func (cmd *DBConnectionStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	fmt.Println("✓ OS keyring is available")
	_, source, err := keyring.ResolveConnectionString()
	switch {
	case err == nil:
		fmt.Printf("✓ Connection string found in %s\n", source)
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Println("ℹ No connection string stored; using the SQLite database")
	default:
		return err
	}
	return nil
}

// maskPassword hides passwords in URL and key=value connection strings
func maskPassword(connStr string) string {
	if storage.IsPostgresTarget(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
		}
		q := u.Query()
		if q.Has("password") {
			q.Set("password", "****")
			u.RawQuery = q.Encode()
		}
		// url.String escapes the mask
		return strings.ReplaceAll(u.String(), "%2A%2A%2A%2A", "****")
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		key, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(key, "password") {
			parts[i] = key + "=****"
		}
	}
	return strings.Join(parts, " ")
}
