package types

import "errors"

// Config holds store parameters for Open.
type Config struct {
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	Timezone string `json:"timezone" yaml:"timezone"`
	Currency string `json:"currency" yaml:"currency"`
}

// Defaults applied when the corresponding Config fields are empty.
const (
	DefaultTimezone = "UTC"
	DefaultCurrency = "USD"
)

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

// TimezoneOrDefault returns the configured timezone, or DefaultTimezone.
func (c Config) TimezoneOrDefault() string {
	if c.Timezone == "" {
		return DefaultTimezone
	}
	return c.Timezone
}

// CurrencyOrDefault returns the configured currency, or DefaultCurrency.
func (c Config) CurrencyOrDefault() string {
	if c.Currency == "" {
		return DefaultCurrency
	}
	return c.Currency
}
