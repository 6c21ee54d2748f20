package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	Link   LinkConfig
	Salon  SalonConfig
	Email  EmailConfig
	NATS   NATSConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LinkConfig configures confirmation-link signing. Secret has no default:
// a deployment without one must refuse to start, not fall back to a known value.
type LinkConfig struct {
	Secret  string
	BaseURL string
}

type SalonConfig struct {
	Name        string
	OwnerName   string
	OwnerEmail  string
	Location    string
	CatalogPath string
}

type EmailConfig struct {
	MailerSendKey string
	FromName      string
	FromEmail     string
	DevMode       bool // print emails to logs instead of sending
}

type NATSConfig struct {
	URL string
}

type RedisConfig struct {
	URL string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Link: LinkConfig{
			Secret:  getEnv("LINK_SECRET", ""),
			BaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		Salon: SalonConfig{
			Name:        getEnv("SALON_NAME", "Lumiere Atelier"),
			OwnerName:   getEnv("OWNER_NAME", ""),
			OwnerEmail:  getEnv("OWNER_EMAIL", ""),
			Location:    getEnv("SALON_LOCATION", ""),
			CatalogPath: getEnv("CATALOG_PATH", "data/catalog.json"),
		},
		Email: EmailConfig{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromName:      getEnv("MAIL_FROM_NAME", "Lumiere Atelier"),
			FromEmail:     getEnv("MAIL_FROM", ""),
			DevMode:       getBool("EMAIL_DEV_MODE", true),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
	}
}

// Validate rejects configurations the service must not serve traffic with.
func (c *Config) Validate() error {
	if c.Link.Secret == "" {
		return errors.New("LINK_SECRET is required; refusing to sign confirmation links without one")
	}
	if c.Link.BaseURL == "" {
		return errors.New("PUBLIC_BASE_URL is required to build confirmation links")
	}
	if c.Salon.OwnerEmail == "" {
		return errors.New("OWNER_EMAIL is required; confirmation links are delivered to the owner")
	}
	if !c.Email.DevMode && (c.Email.MailerSendKey == "" || c.Email.FromEmail == "") {
		return errors.New("MAILERSEND_API_KEY and MAIL_FROM are required unless EMAIL_DEV_MODE is set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
