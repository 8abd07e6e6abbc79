package main

import (
	"errors"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

var usage = `: scrub sensitive columns of database tables in place.

Replace the values of the columns set out in a toml settings file with
fake data, for all configured tables or only those named with --table.

carwash [-v] scrub -s <settings.toml> --dsn <dsn> [--driver pgx] [--table name ...]`

// Options set the programme flag options
type Options struct {
	Verbose bool         `short:"v" long:"verbose" description:"log every row updated"`
	Scrub   ScrubOptions `command:"scrub" description:"scrub configured tables"`
}

// ScrubOptions set the options of the scrub command. Database options
// may also come from the environment or a .env file
type ScrubOptions struct {
	Settings string   `short:"s" long:"settings" env:"CARWASH_SETTINGS" default:"carwash.toml" description:"settings toml file"`
	Tables   []string `short:"t" long:"table" description:"only scrub this table, may be repeated"`
	Driver   string   `long:"driver" env:"CARWASH_DB_DRIVER" default:"pgx" choice:"pgx" choice:"postgres" choice:"sqlite" choice:"mysql" choice:"sqlserver" description:"database driver"`
	DSN      string   `long:"dsn" env:"CARWASH_DB_DSN" description:"database connection string"`
	Seed     int64    `long:"seed" env:"CARWASH_SEED" description:"fake data seed, random if 0"`
	PageSize int      `long:"page-size" default:"500" description:"rows read per query"`
}

// scrubArgs are the parsed arguments of a scrub run
type scrubArgs struct {
	settingsFile string
	tables       []string
	driver       string
	dsn          string
	seed         int64
	pageSize     int
	verbose      bool
}

// parseFlags parses the command line options, taken out of main to
// allow testing
func parseFlags(args []string) (scrubArgs, error) {

	var options Options
	var sa scrubArgs

	parser := flags.NewParser(&options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = usage

	if _, err := parser.ParseArgs(args); err != nil {
		return sa, err
	}
	if parser.Active == nil || parser.Active.Name != "scrub" {
		return sa, errors.New("no command given, use scrub")
	}

	o := options.Scrub
	if strings.TrimSpace(o.DSN) == "" {
		return sa, errors.New("a database connection string is required, use --dsn or CARWASH_DB_DSN")
	}

	sa = scrubArgs{
		settingsFile: o.Settings,
		tables:       o.Tables,
		driver:       o.Driver,
		dsn:          o.DSN,
		seed:         o.Seed,
		pageSize:     o.PageSize,
		verbose:      options.Verbose,
	}
	return sa, nil
}

// isHelp reports if err is a request for help rather than a failure
func isHelp(err error) bool {
	var fe *flags.Error
	return errors.As(err, &fe) && fe.Type == flags.ErrHelp
}
