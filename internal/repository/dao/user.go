package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists       = errors.New("user already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrUniversityNotFound    = errors.New("university not found")
	ErrUniversityNameExists  = errors.New("university already exists")
	ErrDuplicateRegistration = errors.New("already registered")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name              string `gorm:"not null"`
	PreferredName     string
	Pronouns          string
	Gender            string
	TShirtSize        string
	DietaryReqs       string
	AllergyInfo       string
	AccessibilityReqs string

	UserType     string `gorm:"not null"` // "student", "staff" or "system_admin"
	UniversityID *uint  `gorm:"index"`
	StudentID    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type University struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_users_email") {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Save(&user)
	if result.Error != nil {
		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindUniversityByID(ctx context.Context, id uint) (University, error) {
	var uni University

	result := d.db.WithContext(ctx).First(&uni, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return University{}, ErrUniversityNotFound
		}

		return University{}, result.Error
	}

	return uni, nil
}

func (d *UserDAO) ListUniversities(ctx context.Context) ([]University, error) {
	var unis []University

	result := d.db.WithContext(ctx).Order("name").Find(&unis)
	if result.Error != nil {
		return nil, result.Error
	}

	return unis, nil
}

func (d *UserDAO) InsertUniversity(ctx context.Context, uni University) (University, error) {
	result := d.db.WithContext(ctx).Create(&uni)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_universities_name") {
			return University{}, ErrUniversityNameExists
		}

		return University{}, result.Error
	}

	return uni, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	if constraint == "" {
		return true
	}

	return strings.Contains(pgErr.Message, `unique constraint "`+constraint+`"`) ||
		pgErr.ConstraintName == constraint
}
