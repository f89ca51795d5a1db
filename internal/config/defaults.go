package config

import "time"

// Timeout resolution chain (highest priority first):
//   1. CLI flags (--write-timeout, --shutdown-timeout)
//   2. Environment variables (BEACONFIX_WRITE_TIMEOUT, etc.)
//   3. YAML configuration file
//   4. Derivation from the round timeout (this file)

// responseMargin is the time left to write a response after a round resolves.
const responseMargin = 5 * time.Second

// ApplyDerivedDefaults fills the timeouts left at zero from the round
// timeout. A split request blocks for up to one round timeout, so the HTTP
// write timeout and the shutdown grace period must both outlast it.
func ApplyDerivedDefaults(cfg AppConfig) AppConfig {
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = EstimateWriteTimeout(cfg.RoundTimeout)
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = EstimateWriteTimeout(cfg.RoundTimeout)
	}
	return cfg
}

// EstimateWriteTimeout returns the response deadline that lets a request
// waiting on a round of the given timeout still be answered.
func EstimateWriteTimeout(roundTimeout time.Duration) time.Duration {
	if roundTimeout <= 0 {
		return responseMargin
	}
	return roundTimeout + responseMargin
}
