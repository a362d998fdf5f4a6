package config

// Default values for optional configuration fields.
const (
	DefaultServerPort = 8080
	DefaultDBPort     = 5432
	DefaultDBSSLMode  = "prefer"
	DefaultMaxConns   = 10
	DefaultMinConns   = 2
	DefaultAuditPath  = "log/merge_log.csv"
	DefaultLogLevel   = "info"
)

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}

	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	if c.Audit.Path == "" {
		c.Audit.Path = DefaultAuditPath
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
