package database

import (
	"fmt"
	"log"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey;
	// the session and report services rely on that for their uniqueness races.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Professor{},
		&model.Question{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamResult{},
		&model.ExamAnswer{},
		&model.ExamReport{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认管理员账号
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Name:     "Administrator",
			Email:    "admin@example.com",
			Password: string(hashed),
			Role:     model.Admin,
		}
		db.Create(admin)
		log.Println("Seeded default admin account (admin@example.com)")
	}

	return db, nil
}
