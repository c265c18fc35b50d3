// Command generate_demo creates a demo database with a small library, its
// members and their activity.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"flag"
	"os"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/config"
	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/entrypoint"
	"github.com/mrlokans/biblioteca/internal/logging"
)

const (
	defaultDemoDatabasePath = "./demo/demo.db"
	demoPassword            = "biblioteca123"
)

type demoMember struct {
	Name  string
	Email string
}

func intPtr(v int) *int { return &v }

func demoMembers() []demoMember {
	return []demoMember{
		{Name: "Maria Souza", Email: "maria@email.com"},
		{Name: "Pedro Lima", Email: "pedro@email.com"},
		{Name: "Ana Costa", Email: "ana@email.com"},
	}
}

func demoMaterials() []entities.Material {
	return []entities.Material{
		{Author: "J.R.R. Tolkien", Title: "O Hobbit", Year: intPtr(1937),
			Details: entities.BookDetails{Genre: "Fantasia", Publisher: "HarperCollins"}},
		{Author: "J.R.R. Tolkien", Title: "O Silmarillion", Year: intPtr(1977),
			Details: entities.BookDetails{Genre: "Fantasia", Publisher: "HarperCollins"}},
		{Author: "Machado de Assis", Title: "Dom Casmurro", Year: intPtr(1899),
			Details: entities.BookDetails{Genre: "Romance", Movement: "Realismo", Publisher: "Garnier"}},
		{Author: "Frank Herbert", Title: "Duna", Year: intPtr(1965),
			Details: entities.EbookDetails{Genre: "Ficção científica", URL: "https://example.com/duna.epub"}},
		{Author: "Prof. Carla Mendes", Title: "Cálculo I", Year: intPtr(2021),
			Details: entities.HandoutDetails{Class: "ENG-101", Subject: "Matemática"}},
		{Author: "Vários", Title: "Ciência Hoje 390", Year: intPtr(2022),
			Details: entities.MagazineDetails{Publisher: "SBPC"}},
		{Author: "Ana Costa", Title: "Sistemas de Recomendação em Bibliotecas", Year: intPtr(2023),
			Details: entities.ThesisDetails{}},
		{Author: "Pedro Lima", Title: "Resenha: Dom Casmurro", Year: intPtr(2024),
			Details: entities.ReviewArtifactDetails{}},
	}
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	logging.Info().Str("path", *dbPath).Msg("Generating demo database")

	// Start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		logging.Fatal().Err(err).Msg("Failed to remove existing demo database")
	}

	cfg := config.NewConfig()
	cfg.Database.Path = *dbPath
	cfg.Metrics.Enabled = false

	db, err := entrypoint.OpenDatabase(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create database")
	}
	defer db.Close()

	stores := entrypoint.NewStores(db, cfg)

	var memberIDs []uint
	for _, m := range demoMembers() {
		user, err := stores.Auth.Register(auth.RegisterRequest{Name: m.Name, Email: m.Email, Password: demoPassword})
		if err != nil {
			logging.Fatal().Err(err).Str("email", m.Email).Msg("Failed to register member")
		}
		memberIDs = append(memberIDs, user.ID)
	}
	maria, pedro, ana := memberIDs[0], memberIDs[1], memberIDs[2]

	var materialIDs []uint
	for _, m := range demoMaterials() {
		id, err := stores.Catalog.AddMaterial(m)
		if err != nil {
			logging.Fatal().Err(err).Str("title", m.Title).Msg("Failed to add material")
		}
		logging.Info().Str("title", m.Title).Str("category", string(m.Kind())).Msg("Catalogued")
		materialIDs = append(materialIDs, id)
	}
	hobbit, silmarillion, casmurro, duna, calculo := materialIDs[0], materialIDs[1], materialIDs[2], materialIDs[3], materialIDs[4]

	steps := []struct {
		name string
		run  func() error
	}{
		{"friendship maria-pedro", func() error { return stores.Friends.AddFriend(maria, pedro) }},
		{"friendship pedro-ana", func() error { return stores.Friends.AddFriend(pedro, ana) }},
		{"loan hobbit", func() error { _, err := stores.Library.BorrowMaterial(maria, hobbit, 15); return err }},
		{"loan calculo", func() error { _, err := stores.Library.BorrowMaterial(ana, calculo, 30); return err }},
		{"reserve silmarillion", func() error { _, err := stores.Reservations.MakeReservation(pedro, silmarillion); return err }},
		{"favourite hobbit", func() error { return stores.Favourites.AddFavourite(maria, hobbit) }},
		{"favourite casmurro", func() error { return stores.Favourites.AddFavourite(pedro, casmurro) }},
		{"rate casmurro", func() error {
			return stores.Library.RateAndReview(pedro, casmurro, 4.5, "Capitu traiu ou não traiu? Leitura obrigatória.")
		}},
		{"rate hobbit", func() error { return stores.Library.RateAndReview(ana, hobbit, 5, "") }},
		{"read duna", func() error { _, err := stores.Ebooks.RegisterAccess(maria, duna, intPtr(45)); return err }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			logging.Error().Err(err).Str("step", step.name).Msg("Demo step failed")
		}
	}

	logging.Info().Str("password", demoPassword).Msg("Demo database generated successfully")
}
