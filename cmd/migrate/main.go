package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"taskflow/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
)

func main() {
	var down bool
	flag.BoolVar(&down, "down", false, "roll back one migration instead of migrating up")
	flag.Parse()

	_ = godotenv.Load()
	connString := os.Getenv("POSTGRESQL_URL")
	if connString == "" {
		fmt.Fprintln(os.Stderr, "POSTGRESQL_URL must be set")
		os.Exit(1)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read migrations: %v\n", err)
		os.Exit(1)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, connString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not init migrations: %v\n", err)
		os.Exit(1)
	}

	if down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("no migrations to apply")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not apply migrations: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migrations applied")
}
