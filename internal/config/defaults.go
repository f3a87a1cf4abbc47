package config

// Default values applied when the config file omits a setting.
const (
	DefaultAPIPort   = 8080
	DefaultAdminPort = 8081

	DefaultDatabasePath = "./structhr.db"

	// Daily at midnight; the refresh applies scheduled status changes
	// for the locked "today", so once a day is enough.
	DefaultRefreshSchedule = "0 0 * * *"

	DefaultNATSSubject = "structhr.today.changed"
)

func (c *Config) applyDefaults() {
	if c.Server.APIPort == 0 {
		c.Server.APIPort = DefaultAPIPort
	}
	if c.Server.AdminPort == 0 {
		c.Server.AdminPort = DefaultAdminPort
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Refresh.Schedule == "" {
		c.Refresh.Schedule = DefaultRefreshSchedule
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = DefaultNATSSubject
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}
