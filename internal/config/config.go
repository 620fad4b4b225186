package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// App holds all application settings, populated from environment variables
type App struct {
	// Database
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	// JWT
	JWTSecret          string `envconfig:"JWT_SECRET_KEY" required:"true"`
	JWTExpirationHours int64  `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`

	// HTTP
	ServerPort     string `envconfig:"SERVER_PORT" default:"8080"`
	FrontendOrigin string `envconfig:"FRONTEND_ORIGIN" default:"http://localhost:3000"`

	// Uploads
	UploadsDir string `envconfig:"UPLOADS_DIR" default:"uploads"`

	// A registration with this email is promoted to the admin role
	InitialAdminEmail string `envconfig:"INITIAL_ADMIN_EMAIL"`
}

// Load reads the application configuration from the environment
func Load() (*App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &c, nil
}

// DSN builds the PostgreSQL connection string
func (c *App) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
