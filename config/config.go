package config

import (
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Backend string

const (
	BackendSheets Backend = "sheets"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Addr            string
	TelegramToken   string
	Backend         Backend
	SpreadsheetID   string
	CredentialsFile string
	DBUrl           string
	Debug           bool
}

// ParseFlags reads the command line, falling back to the environment (and a
// .env file in the working directory, if any) for unset flags.
func ParseFlags() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()
	return Parse(os.Args[1:])
}

func Parse(args []string) (cfg Config, err error) {
	flags := flag.NewFlagSet("crew-survey", flag.ContinueOnError)

	var host string
	flags.StringVar(&host, "host", "0.0.0.0", "liveness listen host name")
	var port uint
	flags.UintVar(&port, "port", 8080, "liveness listen port number")
	flags.StringVar(&cfg.TelegramToken, "telegram-token", os.Getenv("API_TOKEN"), "Telegram bot token (env API_TOKEN)")
	var backend string
	flags.StringVar(&backend, "backend", getEnv("SURVEY_BACKEND", string(BackendSheets)), "where submissions go: sheets or sqlite (env SURVEY_BACKEND)")
	flags.StringVar(&cfg.SpreadsheetID, "spreadsheet-id", os.Getenv("SPREADSHEET_ID"), "Google spreadsheet id (env SPREADSHEET_ID)")
	flags.StringVar(&cfg.CredentialsFile, "credentials-file", getEnv("CREDENTIALS_FILE", "google-credentials.json"), "service account key file (env CREDENTIALS_FILE)")
	flags.StringVar(&cfg.DBUrl, "db-url", getEnv("SURVEY_DB", "survey.sqlite"), "path to SQLite3 DB file for the sqlite backend (env SURVEY_DB)")
	flags.BoolVar(&cfg.Debug, "debug", os.Getenv("DEBUG") != "", "log at DEBUG level")

	err = flags.Parse(args)
	if err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.Backend = Backend(backend)

	err = cfg.validate()
	return
}

func (cfg Config) validate() error {
	var errs *multierror.Error

	if cfg.TelegramToken == "" {
		errs = multierror.Append(errs, errors.New("missing parameter -telegram-token"))
	}

	switch cfg.Backend {
	case BackendSheets:
		if cfg.SpreadsheetID == "" {
			errs = multierror.Append(errs, errors.New("missing parameter -spreadsheet-id"))
		}
		if cfg.CredentialsFile == "" {
			errs = multierror.Append(errs, errors.New("missing parameter -credentials-file"))
		}
	case BackendSQLite:
		if cfg.DBUrl == "" {
			errs = multierror.Append(errs, errors.New("missing parameter -db-url"))
		}
	default:
		errs = multierror.Append(errs, errors.Errorf("unknown backend %q", cfg.Backend))
	}

	return errs.ErrorOrNil()
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
