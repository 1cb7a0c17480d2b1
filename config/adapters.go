package config

import (
	"os"

	"confidence-pool-go/database"
	"confidence-pool-go/logging"
)

// ToDatabaseConfig converts Config to database.Config
func (c *Config) ToDatabaseConfig() database.Config {
	return database.Config{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		Username: c.Database.Username,
		Password: c.Database.Password,
		Database: c.Database.Database,
	}
}

// ToLoggingConfig converts Config to logging.Config
func (c *Config) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Output:      os.Stdout,
		Prefix:      c.Logging.Prefix,
		EnableColor: c.Logging.EnableColor,
	}
}
