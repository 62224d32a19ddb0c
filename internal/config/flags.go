package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// listValue is a comma separated flag value.
type listValue []string

func (l *listValue) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *listValue) Set(s string) error {
	*l = nil
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// ParseFlags parses the server flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-d database DSN
//	-driver database driver (pgx or sqlite3)
//	-redis-address redis address in format [host]:[port]
//	-redis-password redis password
//	-redis-db redis logical database
//	-handlers ordered comma separated handler names
//	-writable comma separated writable handler names
//	-table settings table name
//	-redis-prefix redis key prefix
//	-static-file static overrides YAML file
//	-defaults-file defaults YAML file
//	-hydration-ttl hydrated context lifetime (e.g., "5m"; 0 = forever)
//	-ignore-unsupported-forget skip read-only writable handlers on forget
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-token-sign-key JWT signing secret (empty disables auth)
//	-token-issuer JWT issuer
//	-log-level log level
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var handlers, writable listValue
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("settings-server", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "Database driver (pgx or sqlite3)")
	fs.StringVar(&cfg.Storage.Redis.Address, "redis-address", "", "Redis address host:port")
	fs.StringVar(&cfg.Storage.Redis.Password, "redis-password", "", "Redis password")
	fs.IntVar(&cfg.Storage.Redis.DB, "redis-db", 0, "Redis logical database")
	fs.Var(&handlers, "handlers", "Ordered comma separated settings handlers")
	fs.Var(&writable, "writable", "Comma separated writable settings handlers")
	fs.StringVar(&cfg.Settings.Table, "table", "", "Settings table name")
	fs.StringVar(&cfg.Settings.RedisPrefix, "redis-prefix", "", "Redis key prefix")
	fs.StringVar(&cfg.Settings.StaticFile, "static-file", "", "Static overrides YAML file")
	fs.StringVar(&cfg.App.DefaultsFile, "defaults-file", "", "Defaults YAML file")
	fs.DurationVar(&cfg.Settings.HydrationTTL, "hydration-ttl", 0, "Hydrated context lifetime (0 = forever)")
	fs.BoolVar(&cfg.Settings.IgnoreUnsupportedForget, "ignore-unsupported-forget", false, "Skip read-only writable handlers on forget")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Auth.TokenSignKey, "token-sign-key", "", "JWT signing secret (empty disables auth)")
	fs.StringVar(&cfg.Auth.TokenIssuer, "token-issuer", "", "JWT issuer")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Settings.Handlers = handlers
	cfg.Settings.Writable = writable

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
