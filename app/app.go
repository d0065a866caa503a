package app

import (
	"log/slog"

	"oruma/database"
	"oruma/services"
	"oruma/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Database *database.Handle
	Contacts *database.ContactStore
	Notes    *database.NoteStore
	Importer *services.ImportService
	Logger   *slog.Logger
}

// New creates a new App instance with stores bound to one database handle
func New(handle *database.Handle, importMaxRecords int, logger *slog.Logger, opts ...database.StoreOption) *App {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	contacts := database.NewContactStore(handle, v, logger, opts...)

	return &App{
		Database: handle,
		Contacts: contacts,
		Notes:    database.NewNoteStore(handle, v, logger, opts...),
		Importer: services.NewImportService(contacts, v, importMaxRecords, logger),
		Logger:   logger,
	}
}
