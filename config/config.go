package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/eventease/eventease/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	JWTTTL    time.Duration

	// QRTokenTTL is the window a ticket stays scannable after issuance.
	QRTokenTTL time.Duration

	// VolunteerAccessCode gates self-registration with the volunteer role.
	VolunteerAccessCode string

	StoreTimeout time.Duration

	DefaultCapacity  int
	TwoWheelerSlots  int
	FourWheelerSlots int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    envDuration("JWT_TTL", 24*time.Hour),

		QRTokenTTL:          envDuration("QR_TOKEN_TTL", 24*time.Hour),
		VolunteerAccessCode: os.Getenv("VOLUNTEER_ACCESS_CODE"),

		StoreTimeout: envDuration("STORE_TIMEOUT", 5*time.Second),

		DefaultCapacity:  envInt("DEFAULT_EVENT_CAPACITY", 100),
		TwoWheelerSlots:  envInt("PARKING_TWO_WHEELER_SLOTS", 100),
		FourWheelerSlots: envInt("PARKING_FOUR_WHEELER_SLOTS", 50),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Event{},
		&models.Attendee{},
		&models.Ticket{},
		&models.Announcement{},
		&models.LostItem{},
		&models.ParkingLot{},
		&models.ParkingBooking{},
		&models.Emergency{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)
	seedParkingLots(db, cfg)

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: models.RoleUser},
		{Name: models.RoleVolunteer},
		{Name: models.RoleAdmin},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}

func seedParkingLots(db *gorm.DB, cfg *Config) {
	lots := []models.ParkingLot{
		{Kind: models.ParkingTwoWheeler, Total: cfg.TwoWheelerSlots},
		{Kind: models.ParkingFourWheeler, Total: cfg.FourWheelerSlots},
	}

	for _, lot := range lots {
		var existingLot models.ParkingLot
		result := db.Where("kind = ?", lot.Kind).First(&existingLot)
		if result.Error != nil {
			db.Create(&lot)
		}
	}
}
