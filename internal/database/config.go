package database

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite)
	Driver string

	// PostgreSQL-specific configuration: a full connection URL
	URL string

	// SQLite-specific configuration
	Path string
}

// DSN builds a Data Source Name string based on the driver
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return c.URL
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}
