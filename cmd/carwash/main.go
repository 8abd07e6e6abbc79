// Command carwash scrubs sensitive columns of database tables in place,
// replacing them with fake data as set out in a toml settings file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// load database settings from a .env file if there is one
	envFile := os.Getenv("CARWASH_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Could not load %s: %s\n", envFile, err)
		os.Exit(1)
	}

	// parse flags
	args, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		if isHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger, err := newLogger(args.verbose)
	if err != nil {
		fmt.Printf("Could not make logger: %s\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// run scrubber
	if err := scrub(context.Background(), args, logger); err != nil {
		fmt.Printf("Scrub error (%s): %s\n", errorClass(err), err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
