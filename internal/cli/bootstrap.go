package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/database"
)

// BootstrapCommand creates or upgrades the schema of a database file.
type BootstrapCommand struct {
	DatabasePath string
	Verbose      bool

	out io.Writer
}

func NewBootstrapCommand() *BootstrapCommand {
	return &BootstrapCommand{out: os.Stdout}
}

func (cmd *BootstrapCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("bootstrap", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List the tables after bootstrapping")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s bootstrap [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create every table, index and trigger the library needs.\n")
		fmt.Fprintf(os.Stderr, "Running it against an existing database changes nothing.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *BootstrapCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := openDatabase(absDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(cmd.out, "Schema ready: %s\n", absDBPath)
	if cmd.Verbose {
		for _, table := range database.Tables {
			fmt.Fprintf(cmd.out, "  %s\n", table)
		}
	}
	return nil
}
