package storage

import (
	"log"

	"github.com/ruzzidanali/smashit/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB(dsn string) *gorm.DB {
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connecting to db: " + dbError.Error())
	}

	DB = db
	return db
}

// Migrate runs AutoMigrate plus the raw DDL AutoMigrate cannot
// express. The exclusion constraint is the hard guarantee behind the
// no-double-booking rule: even if two requests race past the
// application-level conflict check, Postgres rejects the second insert.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Court{},
		&models.Booking{},
		&models.AuditLog{},
	)

	if db.Dialector.Name() == "postgres" {
		db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist")
		db.Exec("ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_no_overlap")
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				court_id WITH =,
				date WITH =,
				int4range(start_minutes, end_minutes) WITH &&
			) WHERE (status = 'CONFIRMED')`)
	}
}

func InitializeDB(dsn string) *gorm.DB {
	db := connectToDB(dsn)
	Migrate(db)
	return db
}
