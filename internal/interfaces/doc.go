// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interface they need next to their own code;
// the repositories under internal/database satisfy them structurally. The
// compile-time checks in checks.go keep both sides in step.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore, FriendStore, CatalogStore, LoanStore, ReservationStore,
//     FavouritesStore, RatingStore, ReviewStore, EbookStore:
//     HTTP controller dependencies (internal/http/stores.go)
//   - UserStore: credential storage for registration and login (internal/auth/service.go)
//   - MaterialStatusReader, LoanStore, RatingStore, ReviewStore, UserReader,
//     FavouriteLister: desk flows (internal/services/interfaces.go)
//
// ## Background Work Interfaces
//
//   - OverdueLister, ReservationExpirer: maintenance task inputs (internal/tasks/)
//   - TaskEnqueuer: what the cron scheduler needs from the queue (internal/scheduler/maintenance.go)
//   - TaskQueue, MaintenanceRunner: task endpoints (internal/http/tasks.go, internal/http/stores.go)
//
// # Adding a New Interaction
//
// To record a new kind of member interaction with a material:
//
//  1. Add the table to internal/database/schema.go with ON DELETE CASCADE
//     foreign keys to usuario and material_bibliografico, and list it in
//     Tables.
//
//  2. Add the row type to internal/entities/interactions.go with a TableName
//     method. Timestamp columns filled by SQLite defaults carry the
//     read-only gorm tag (";->"), as Loan.LoanedAt does.
//
//  3. Create a repository under internal/database/<name>/ following the
//     existing ones: NewRepository(db *gorm.DB), sentinel errors from
//     internal/entities, constraint errors classified with
//     database.IsUniqueViolation and database.IsForeignKeyViolation.
//
//  4. If the interaction should influence recommendations, add it to the
//     interactedMaterials union in internal/recommend/recommender.go.
//
//  5. Declare the store interface in internal/http/stores.go, write the
//     controller, register the routes in NewRouter and add the
//     compile-time check here.
//
// # Adding a Maintenance Task
//
//  1. Define the task type with a Config method in internal/tasks/.
//  2. Write the processor and a NewXQueue constructor.
//  3. Register the queue in internal/entrypoint/entrypoint.go.
//  4. Enqueue it from MaintenanceScheduler.RunNow if it should run on the
//     maintenance schedule.
package interfaces
