package config

import (
	"fmt"
	"os"
	"strings"
)

// Settings holds all process-wide configuration. It is loaded once in main
// and passed explicitly to the components that need it.
type Settings struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	AuthSecret string

	AllowedOrigins []string
	LogLevel       string
	Port           string
}

// Load reads settings from environment variables. godotenv is expected to
// have populated the environment before this is called.
func Load() (*Settings, error) {
	s := &Settings{
		DBUser:     strings.TrimSpace(os.Getenv("user")),
		DBPassword: strings.TrimSpace(os.Getenv("password")),
		DBHost:     strings.TrimSpace(os.Getenv("host")),
		DBPort:     strings.TrimSpace(os.Getenv("port")),
		DBName:     strings.TrimSpace(os.Getenv("dbname")),
		AuthSecret: strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		LogLevel:   strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		Port:       strings.TrimSpace(os.Getenv("PORT")),
	}

	if s.DBUser == "" || s.DBHost == "" || s.DBName == "" {
		return nil, fmt.Errorf("database configuration incomplete: user, host and dbname are required")
	}
	if s.AuthSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET environment variable not set")
	}
	if s.DBPort == "" {
		s.DBPort = "5432"
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.Port == "" {
		s.Port = "8080"
	}

	origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if origins == "" {
		origins = "http://localhost:3000"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			s.AllowedOrigins = append(s.AllowedOrigins, o)
		}
	}

	return s, nil
}

// ConnString builds the postgres connection URL.
func (s *Settings) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=require",
		s.DBUser, s.DBPassword, s.DBHost, s.DBPort, s.DBName)
}
