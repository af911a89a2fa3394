package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&University{},
		&User{},
		&Competition{},
		&Site{},
		&Participant{},
		&Staff{},
		&Team{},
		&Course{},
		&RegoToggles{},
		&Announcement{},
		&Notification{},
	)
}

// DropAllTables is used by integration tests to reset the schema.
func DropAllTables(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&Notification{},
		&Announcement{},
		&RegoToggles{},
		&Course{},
		&Team{},
		&Staff{},
		&Participant{},
		&Site{},
		&Competition{},
		&User{},
		&University{},
	)
}
