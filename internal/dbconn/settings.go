// Package dbconn turns the db_* configuration entries into driver-native
// connection settings for the database backends the training application
// supports. It never opens a connection.
package dbconn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/MKhiriev/dvwa-config/internal/config"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Source is the subset of *config.Configuration read by NewSettings.
type Source interface {
	Get(key config.Key) (string, error)
	DBPort() (int, error)
}

// Settings holds the database connection parameters.
type Settings struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// NewSettings reads the db_* entries from src. The port goes through the
// typed accessor, so a non-numeric or out-of-range port is reported here.
func NewSettings(src Source) (Settings, error) {
	var s Settings

	fields := []struct {
		key config.Key
		dst *string
	}{
		{config.KeyDBServer, &s.Host},
		{config.KeyDBDatabase, &s.Database},
		{config.KeyDBUser, &s.User},
		{config.KeyDBPassword, &s.Password},
	}
	for _, f := range fields {
		v, err := src.Get(f.key)
		if err != nil {
			return Settings{}, fmt.Errorf("error reading database settings: %w", err)
		}
		*f.dst = v
	}

	port, err := src.DBPort()
	if err != nil {
		return Settings{}, fmt.Errorf("error reading database settings: %w", err)
	}
	s.Port = port

	return s, nil
}

// Addr returns host:port, bracketing IPv6 hosts.
func (s Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// MySQLDSN returns the go-sql-driver/mysql data source name, e.g.
// "dvwa:p@ssw0rd@tcp(localhost:3306)/dvwa".
func (s Settings) MySQLDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = s.User
	cfg.Passwd = s.Password
	cfg.Net = "tcp"
	cfg.Addr = s.Addr()
	cfg.DBName = s.Database

	return cfg.FormatDSN()
}

// PostgresURL returns a postgres:// connection string with escaped
// credentials. sslMode is added as the sslmode parameter when non-empty.
func (s Settings) PostgresURL(sslMode string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(s.User, s.Password),
		Host:   s.Addr(),
		Path:   "/" + s.Database,
	}
	if sslMode != "" {
		u.RawQuery = url.Values{"sslmode": {sslMode}}.Encode()
	}

	return u.String()
}

// PostgresConfig parses PostgresURL with pgx, so malformed settings surface
// before any consumer tries to connect.
func (s Settings) PostgresConfig(sslMode string) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(s.PostgresURL(sslMode))
	if err != nil {
		return nil, fmt.Errorf("error parsing postgres settings: %w", err)
	}

	return connCfg, nil
}

// MarshalZerologObject logs the settings without the password.
func (s Settings) MarshalZerologObject(e *zerolog.Event) {
	e.Str("host", s.Host).
		Int("port", s.Port).
		Str("database", s.Database).
		Str("user", s.User)
}
