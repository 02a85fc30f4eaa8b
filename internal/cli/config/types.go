// Package config provides configuration management for the leapadmin CLI.
package config

import (
	"github.com/leapstack-labs/leapadmin/pkg/adapter"
)

// Config holds all CLI configuration options.
type Config struct {
	Target        TargetConfig `koanf:"target"`
	Resources     []string     `koanf:"resources"`
	Server        ServerConfig `koanf:"server"`
	MigrationsDir string       `koanf:"migrations_dir"`
	Verbose       bool         `koanf:"verbose"`
	OutputFormat  string       `koanf:"output"`
}

// TargetConfig describes the database the admin exposes.
type TargetConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	Username string            `koanf:"username"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Options  map[string]string `koanf:"options"`
}

// ServerConfig holds configuration for the admin API server.
type ServerConfig struct {
	Port int `koanf:"port"`
}

// AdapterConfig converts the target section into an adapter config.
func (t TargetConfig) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     t.Type,
		Path:     t.Path,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.Username,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
	}
}
