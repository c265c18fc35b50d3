package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/database/users"
	"github.com/mrlokans/biblioteca/internal/recommend"
)

// RecommendCommand prints recommendations for one member.
type RecommendCommand struct {
	DatabasePath string
	Email        string
	UserID       uint
	Limit        int
	Verbose      bool

	out io.Writer
}

func NewRecommendCommand() *RecommendCommand {
	return &RecommendCommand{out: os.Stdout}
}

func (cmd *RecommendCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Email, "email", "", "Email of the member")
	fs.UintVar(&cmd.UserID, "user", 0, "ID of the member (alternative to -email)")
	fs.IntVar(&cmd.Limit, "limit", recommend.DefaultLimit, "Maximum number of recommendations")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Also print the ranked categories")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s recommend (-email <email> | -user <id>) [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Suggest materials from the member's most used categories.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" && cmd.UserID == 0 {
		return fmt.Errorf("one of -email or -user is required")
	}
	return nil
}

func (cmd *RecommendCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := users.NewRepository(db.DB)
	if cmd.UserID == 0 {
		user, err := userRepo.GetUserByEmail(cmd.Email)
		if err != nil {
			return fmt.Errorf("failed to find member %s: %w", cmd.Email, err)
		}
		cmd.UserID = user.ID
	}

	recommender := recommend.NewRecommender(db.DB)

	if cmd.Verbose {
		categories, err := recommender.TopCategories(cmd.UserID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.out, "Top categories:")
		for _, c := range categories {
			fmt.Fprintf(cmd.out, "  %s (%d)\n", c.Category, c.Count)
		}
	}

	materials, err := recommender.Recommend(cmd.UserID, cmd.Limit)
	if err != nil {
		return err
	}

	if len(materials) == 0 {
		fmt.Fprintln(cmd.out, "No recommendations")
		return nil
	}

	fmt.Fprintln(cmd.out, "Recommendations:")
	for i, m := range materials {
		fmt.Fprintf(cmd.out, "%d. \"%s\" by %s [%s]\n", i+1, m.Title, m.Author, m.Kind)
	}
	return nil
}
