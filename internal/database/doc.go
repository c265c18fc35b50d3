// Package database owns the SQLite connection and the schema.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, foreign keys, lifecycle
//	├── schema.go        # Idempotent DDL and the usuario trigger
//	├── constraints.go   # Constraint error classification
//	├── users/           # usuario
//	├── catalog/         # material_bibliografico and its specializations
//	├── friendships/     # amizade
//	├── loans/           # emprestimo
//	├── reservations/    # reserva
//	├── favourites/      # favorita
//	├── ratings/         # avaliacao
//	├── reviews/         # resenha
//	└── ebooks/          # acesso_ebook
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./biblioteca.db")
//	catalogRepo := catalog.NewRepository(db.DB)
//	loansRepo := loans.NewRepository(db.DB)
//
//	id, err := catalogRepo.AddMaterial(entities.Material{...})
//	status, err := catalogRepo.GetMaterialStatus(id)
//
// Every repository shares the one *gorm.DB owned by Database. The pool is
// capped at a single connection and every call is synchronous.
//
// # Adding a New Domain
//
//  1. Add the table to schemaStatements and Tables
//  2. Create a sub-package with a Repository struct holding a *gorm.DB
//  3. Add NewRepository(db *gorm.DB) and the store methods
//  4. Add the compile-time check to internal/interfaces/checks.go
package database
