package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// AppConfig is the optional file-based configuration for mail delivery and the
// OTP login flow. Server-level settings (database URL, Redis, MinIO, port) come
// from the environment in cmd/main.go.
type AppConfig struct {
	Mail MailConfig `toml:"mail"`
	OTP  OTPConfig  `toml:"otp"`
}

// MailConfig contains SMTP settings. An empty Host means mail is logged
// locally instead of sent.
type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// OTPConfig contains the passcode policy for distributor login.
type OTPConfig struct {
	ValidityMinutes       int `toml:"validity_minutes"`
	ResendIntervalSeconds int `toml:"resend_interval_seconds"`
	Digits                int `toml:"digits"`
}

// Validity returns the passcode validity window.
func (c OTPConfig) Validity() time.Duration {
	return time.Duration(c.ValidityMinutes) * time.Minute
}

// ResendInterval returns the minimum spacing between OTP requests for the
// same distributor.
func (c OTPConfig) ResendInterval() time.Duration {
	return time.Duration(c.ResendIntervalSeconds) * time.Second
}

// DefaultOTPConfig is the canonical passcode policy: 6 digits, valid for 10
// minutes, resendable every 30 seconds.
func DefaultOTPConfig() OTPConfig {
	return OTPConfig{
		ValidityMinutes:       10,
		ResendIntervalSeconds: 30,
		Digits:                6,
	}
}

// LoadAppConfig loads configuration from a TOML file, filling in the default
// OTP policy for unset fields.
func LoadAppConfig(filename string) (*AppConfig, error) {
	config := &AppConfig{OTP: DefaultOTPConfig()}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if config.OTP.ValidityMinutes <= 0 {
		config.OTP.ValidityMinutes = 10
	}
	if config.OTP.ResendIntervalSeconds <= 0 {
		config.OTP.ResendIntervalSeconds = 30
	}
	if config.OTP.Digits <= 0 {
		config.OTP.Digits = 6
	}
	return config, nil
}
