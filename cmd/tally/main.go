// Command tally prints the elections saved in a ballotchain database.
//
//	tally -d file:ballotchain.db
//	tally -d file:ballotchain.db -e 5
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danielhkuo/ballotchain/cliparse"
	"github.com/danielhkuo/ballotchain/db"
	"github.com/danielhkuo/ballotchain/models"
	"github.com/danielhkuo/ballotchain/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tally:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		return err
	}

	fs := flag.NewFlagSet("tally", flag.ContinueOnError)
	dbURL := fs.String("d", os.Getenv("DATABASE_URL"), "Database URL")
	dbType := fs.String("t", envOr("DATABASE_TYPE", db.TypeSQLite), "Database type (sqlite or postgres)")
	electionID := fs.String("e", "", "Print the full tally of one election")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbURL == "" {
		return fmt.Errorf("a database URL is required (-d or DATABASE_URL)")
	}

	conn, err := db.Open(*dbType, *dbURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	snap, err := db.NewRepository(conn, *dbType).Load()
	if err != nil {
		return err
	}

	if *electionID != "" {
		e, ok := findElection(snap, *electionID)
		if !ok {
			return fmt.Errorf("election %q not found", *electionID)
		}
		report.NewTallyReport(e).PrintTallyTable(out)
		return nil
	}

	fmt.Fprintln(out, "Active elections")
	report.PrintElectionsTable(out, snap.Active)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Past elections")
	report.PrintElectionsTable(out, snap.Past)
	return nil
}

func findElection(snap models.Snapshot, id string) (models.Election, bool) {
	for _, list := range [][]models.Election{snap.Active, snap.Past} {
		for _, e := range list {
			if e.ID == id {
				return e, true
			}
		}
	}
	return models.Election{}, false
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
