package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/ymorita/studylog/internal/domain"
	"github.com/ymorita/studylog/internal/pkg/envutil"
	"github.com/ymorita/studylog/internal/pkg/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService opens the journal database from the POSTGRES_* env
// variables. TranslateError turns driver constraint failures into GORM's
// dialect-independent sentinels, which the API error taxonomy classifies.
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
	port := envutil.GetEnv("POSTGRES_PORT", "5432", log)
	user := envutil.GetEnv("POSTGRES_USER", "postgres", log)
	password := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
	name := envutil.GetEnv("POSTGRES_NAME", "studylog", log)
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	log.Info("Connecting to database...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating journal tables...")
	err := s.db.AutoMigrate(
		&types.Theme{},
		&types.LearningLogEntry{},
		&types.MetaNote{},
		&types.MetaNoteTheme{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for journal tables", "error", err)
		return err
	}

	// One active log per theme per day. Deleted rows stay behind, so the
	// uniqueness only covers rows still visible to the API.
	if err := s.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uniq_learning_log_entry_owner_theme_date"
		ON "learning_log_entry" ("owner_id", "theme_id", "date")
		WHERE "state" <> 'DELETED'
	`).Error; err != nil {
		return fmt.Errorf("failed to add uniq_learning_log_entry_owner_theme_date: %w", err)
	}

	s.log.Info("Configuring foreign key relationships for journal tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{
			name: "fk_learning_log_entry_theme_id",
			ddl: `ALTER TABLE "learning_log_entry"
				ADD CONSTRAINT "fk_learning_log_entry_theme_id"
				FOREIGN KEY ("theme_id") REFERENCES "theme"("id")`,
		},
		{
			name: "fk_meta_note_related_log_id",
			ddl: `ALTER TABLE "meta_note"
				ADD CONSTRAINT "fk_meta_note_related_log_id"
				FOREIGN KEY ("related_log_id") REFERENCES "learning_log_entry"("id")`,
		},
		{
			name: "fk_meta_note_theme_meta_note_id",
			ddl: `ALTER TABLE "meta_note_theme"
				ADD CONSTRAINT "fk_meta_note_theme_meta_note_id"
				FOREIGN KEY ("meta_note_id") REFERENCES "meta_note"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_meta_note_theme_theme_id",
			ddl: `ALTER TABLE "meta_note_theme"
				ADD CONSTRAINT "fk_meta_note_theme_theme_id"
				FOREIGN KEY ("theme_id") REFERENCES "theme"("id")`,
		},
	}
	for _, c := range constraints {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", c.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
