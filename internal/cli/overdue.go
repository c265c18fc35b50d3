package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/database/loans"
	"github.com/mrlokans/biblioteca/internal/database/reservations"
)

// OverdueCommand lists overdue loans and can expire stale reservations.
type OverdueCommand struct {
	DatabasePath       string
	ExpireReservations time.Duration
	DryRun             bool

	out io.Writer
	now func() time.Time
}

func NewOverdueCommand() *OverdueCommand {
	return &OverdueCommand{out: os.Stdout, now: time.Now}
}

func (cmd *OverdueCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("overdue", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.DurationVar(&cmd.ExpireReservations, "expire-reservations", 0, "Expire pending reservations older than this (e.g. 168h), 0 skips")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Only report, never expire reservations")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s overdue [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List open loans past their expected return date.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ExpireReservations < 0 {
		return fmt.Errorf("-expire-reservations must not be negative")
	}
	return nil
}

func (cmd *OverdueCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	now := cmd.now().UTC()

	overdue, err := loans.NewRepository(db.DB).ListOverdue(now)
	if err != nil {
		return err
	}

	if len(overdue) == 0 {
		fmt.Fprintln(cmd.out, "No overdue loans")
	} else {
		fmt.Fprintf(cmd.out, "%d overdue loans:\n", len(overdue))
		for _, l := range overdue {
			days := int(now.Sub(l.ExpectedReturnAt).Hours() / 24)
			fmt.Fprintf(cmd.out, "  #%d \"%s\" held by %s <%s>, %d days late\n", l.ID, l.Title, l.UserName, l.UserEmail, days)
		}
	}

	if cmd.ExpireReservations == 0 || cmd.DryRun {
		return nil
	}

	expired, err := reservations.NewRepository(db.DB).ExpirePending(now.Add(-cmd.ExpireReservations))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "Expired %d reservations\n", expired)
	return nil
}
