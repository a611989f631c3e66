// Package config manages user-level settings stored at ~/.installers/config.yaml.
// Settings can also come from INSTALLERS_* environment variables; command
// line flags take precedence over both.
package config
