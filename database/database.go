package database

import (
	"workforce/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.BankAccount{},
		&models.WorkingHour{},
		&models.Roster{},
		&models.RosterAssignment{},
		&models.Payroll{},
		&models.RolePermission{},
		&models.Invite{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaultAdmin(); err != nil {
		return err
	}
	return seedPermissionMatrix()
}

func seedDefaultAdmin() error {
	var count int64
	DB.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:           "admin",
		FullName:           "Administrator",
		PasswordHash:       string(hashedPassword),
		Role:               models.RoleAdmin,
		MustChangePassword: true,
	}

	result := DB.Create(&admin)
	if result.Error != nil {
		return result.Error
	}

	logrus.Info("default admin user created (username: admin, password: admin)")
	return nil
}

func seedPermissionMatrix() error {
	var count int64
	DB.Model(&models.RolePermission{}).Count(&count)
	if count > 0 {
		return nil
	}

	rows := models.DefaultMatrix().Rows()
	if err := DB.Create(&rows).Error; err != nil {
		return err
	}

	logrus.WithField("grants", len(rows)).Info("default permission matrix seeded")
	return nil
}

// ReplacePermissionMatrix swaps the whole permission set in one transaction:
// delete every existing (role, permission) pair, insert the full new set.
// The transaction boundary is what keeps concurrent saves from interleaving
// a delete with another writer's insert.
func ReplacePermissionMatrix(m models.PermissionMatrix) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		rows := m.Rows()
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func GetDB() *gorm.DB {
	return DB
}
