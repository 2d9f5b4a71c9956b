// Package seed loads demo participants into the web service database.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/louisbranch/galien/internal/participant"
	entrypoint "github.com/louisbranch/galien/internal/platform/cmd"
	"github.com/louisbranch/galien/internal/services/web/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"GALIEN_WEB_DB_PATH" envDefault:"data/galien-web.db"`
	List   bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.BoolVar(&cfg.List, "list", false, "print the demo participants without writing them")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Fixtures returns the demo participants. The first one is the participant
// the dashboard detail page is usually demonstrated with.
func Fixtures() []participant.Participant {
	return []participant.Participant{
		{
			ID:               "12345678-abcd-efgh-ijkl-123456789012",
			FirstName:        "Jean",
			LastName:         "Dupont",
			Email:            "jean.dupont@example.com",
			Phone:            "+33 1 23 45 67 89",
			Organization:     "Laboratoire Pharmaceutique Innovant",
			Country:          "France",
			Status:           participant.StatusApproved,
			Type:             participant.TypeParticipant,
			RegistrationDate: "2023-09-15T10:30:00Z",
		},
		{
			ID:               "23456789-bcde-fghi-jklm-234567890123",
			FirstName:        "Claire",
			LastName:         "Martin",
			Email:            "claire.martin@example.com",
			Organization:     "Hôpital Universitaire de Lyon",
			Country:          "France",
			Status:           participant.StatusPending,
			Type:             participant.TypeSpeaker,
			RegistrationDate: "2023-09-18T14:05:00Z",
		},
		{
			ID:               "34567890-cdef-ghij-klmn-345678901234",
			FirstName:        "Lucas",
			LastName:         "Peeters",
			Email:            "lucas.peeters@example.com",
			Organization:     "Santé Hebdo",
			Country:          "Belgique",
			Status:           participant.StatusRejected,
			Type:             participant.TypePress,
			RegistrationDate: "2023-09-21T08:45:00Z",
		},
		{
			ID:               "45678901-defg-hijk-lmno-456789012345",
			FirstName:        "Amélie",
			LastName:         "Roux",
			Email:            "amelie.roux@example.com",
			Organization:     "Fondation Galien",
			Country:          "France",
			Status:           participant.StatusApproved,
			Type:             participant.TypeOrganizer,
			RegistrationDate: "2023-08-30T09:00:00Z",
		},
	}
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	fixtures := Fixtures()
	if cfg.List {
		for _, p := range fixtures {
			fmt.Fprintf(out, "%s\t%s\t%s\n", p.ID, p.FullName(), p.Status)
		}
		return nil
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open web store: %w", err)
	}
	defer store.Close()

	for _, p := range fixtures {
		if err := store.PutParticipant(ctx, p); err != nil {
			return fmt.Errorf("seed participant %s: %w", p.ID, err)
		}
		fmt.Fprintf(out, "seeded %s (%s)\n", p.FullName(), p.Status)
	}
	return nil
}
