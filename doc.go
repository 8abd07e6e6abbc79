/*
Package carwash scrubs sensitive data out of database tables in place.

Each configured table is read a row at a time and the configured
columns are overwritten with fake data, so that a copy of a production
database can be handed to developers without the personal data it
holds.

# Overview

A Config maps table names to rules. A rule is either a set of column
formatters or a single record formatter that sees the whole row:

	cfg := carwash.NewConfig().
		Set("users", carwash.Columns(carwash.ColumnRules{
			"first_name": carwash.Generator("firstName"),
			"email":      carwash.Generator("safeEmail"),
			"bio":        carwash.Generator("words:3,true"),
			"password":   carwash.Fixed{Value: hash},
		})).
		Set("addresses", carwash.Record(carwash.RecordFunc(
			func(f *faker.Faker, r carwash.Row) (carwash.Row, error) {
				return carwash.Row{"city": f.City()}, nil
			})))

	store, err := sqlstore.Open(ctx, sqlstore.Config{Driver: "pgx", DSN: dsn}, logger)
	...
	err = carwash.NewScrubber(store, faker.New(0)).Run(ctx, cfg, "users")

Column formatters may be a named generator with optional arguments
after a colon ("numberBetween:1,10"), a GeneratorFunc, a FormatterFunc
which is also given the column name, a ValueFunc which is also given the
column's current value, or any type with a Format method.
Generator names are the methods of faker.Faker with the first letter
lower cased.

The primary key column "id" addresses updates and can never be
scrubbed.

Running the programme

	Usage:
	  carwash [-v] scrub -s <settings.toml> --dsn <dsn> [--driver pgx] [--table name ...]

	Application Options:
	  -v, --verbose    log every row updated

	Help Options:
	  -h, --help       Show this help message

	[scrub command options]
	      -s, --settings=  settings toml file (default: carwash.toml) [$CARWASH_SETTINGS]
	      -t, --table=     only scrub this table, may be repeated
	          --driver=    database driver (default: pgx) [$CARWASH_DB_DRIVER]
	          --dsn=       database connection string [$CARWASH_DB_DSN]
	          --seed=      fake data seed, random if 0 [$CARWASH_SEED]
	          --page-size= rows read per query (default: 500)

Database settings may also be kept in a .env file in the working
directory, or the file named by CARWASH_ENV_FILE.

An example settings file

Tables are scrubbed in the order they appear in the file.

	["public.users"]
	first_name = "firstName"
	last_name = "lastName"
	email = "safeEmail"
	bio = "words:3,true"
	# the same value for every row
	password = { value = "$2a$06$.wHg4l7yz1ijcfMfG5Gv7ukarFHTVdWUg/bsNf4cShFfe/OTWt6Ne" }
	# lines of a file beside the settings file, cycled when exhausted
	nickname = { source = "names.txt" }

	[addresses]
	address = "streetAddress"
	city = "city"
	postal_code = "postcode"

Only named generators, fixed values and source files can be set from a
settings file; record formatters and custom functions need a Go
program.
*/
package carwash
