package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clipperroom/clipperroom-api/internal/config"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Product{},
		&models.Booking{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// InstallChangeTriggers sets up the row-change notification function and
// attaches it to the bookings and orders tables. Every committed
// insert/update/delete emits a NOTIFY on "<table>_changes" carrying the
// op, row id and, for updates, the set of changed columns.
//
// A failure here is not fatal: the caller downgrades to "no live updates".
func InstallChangeTriggers(db *gorm.DB) error {
	if err := db.Exec(`
        CREATE OR REPLACE FUNCTION notify_row_change() RETURNS trigger AS $$
        DECLARE
            payload jsonb;
            changed text[];
        BEGIN
            IF TG_OP = 'DELETE' THEN
                payload = jsonb_build_object(
                    'table', TG_TABLE_NAME, 'action', TG_OP, 'id', OLD.id
                );
            ELSIF TG_OP = 'UPDATE' THEN
                SELECT coalesce(array_agg(n.key), '{}') INTO changed
                FROM jsonb_each(to_jsonb(NEW)) AS n
                WHERE to_jsonb(OLD) -> n.key IS DISTINCT FROM n.value;

                payload = jsonb_build_object(
                    'table', TG_TABLE_NAME, 'action', TG_OP,
                    'id', NEW.id, 'changed', to_jsonb(changed)
                );
            ELSE
                payload = jsonb_build_object(
                    'table', TG_TABLE_NAME, 'action', TG_OP, 'id', NEW.id
                );
            END IF;

            PERFORM pg_notify(TG_TABLE_NAME || '_changes', payload::text);
            RETURN NULL;
        END;
        $$ LANGUAGE plpgsql
    `).Error; err != nil {
		return err
	}

	for _, table := range []string{"bookings", "orders"} {
		if err := db.Exec(
			`DROP TRIGGER IF EXISTS ` + table + `_notify ON ` + table,
		).Error; err != nil {
			return err
		}

		if err := db.Exec(
			`CREATE TRIGGER ` + table + `_notify
             AFTER INSERT OR UPDATE OR DELETE ON ` + table + `
             FOR EACH ROW EXECUTE FUNCTION notify_row_change()`,
		).Error; err != nil {
			return err
		}
	}

	return nil
}
