package cli

import (
	"errors"

	"github.com/Tholomir/ChronoRex/internal/constants"
	chronoerrors "github.com/Tholomir/ChronoRex/internal/errors"
)

// EmbeddedCredentialsError explains where a PostgreSQL password should live instead.
func EmbeddedCredentialsError() error {
	return chronoerrors.WithHint(
		errors.New("PostgreSQL connection strings with embedded credentials are not allowed"),
		"store the connection string with 'chronorex db-connection set', export "+constants.EnvDBConnection+
			", or use a .pgpass file with a password-free connection string",
	)
}
