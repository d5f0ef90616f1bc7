// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from four layers:
//
//   • built-in defaults                        – see defaults in loader.go,
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `TRAMPO_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with `vault:` is resolved through the
// Vault client before unmarshalling, so the model never stores Vault
// references, only plain strings.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • Durations are written as Go duration strings ("15m", "12h").
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`

	// TrustedProxies is how many reverse proxies append to
	// X-Forwarded-For in front of the service.
	TrustedProxies int `koanf:"trusted_proxies" validate:"gte=0"`
}

//
// Database section
//

// Database selects the driver and DSN.  The DSN usually carries a password,
// so production sets it to a `vault:` reference.
type Database struct {
	Driver  string `koanf:"driver"   validate:"required,oneof=mysql pgx"`
	DSN     string `koanf:"dsn"      validate:"required"`
	MaxOpen int    `koanf:"max_open" validate:"gte=0"`
	MaxIdle int    `koanf:"max_idle" validate:"gte=0"`
	Migrate bool   `koanf:"migrate"`
}

//
// Security section
//

// Security holds HMAC keys.  Empty keys fall back to ephemeral ones, which
// only suits a single dev instance.
type Security struct {
	CSRFKey    string        `koanf:"csrf_key"    validate:"omitempty,min=32"`
	SessionKey string        `koanf:"session_key" validate:"omitempty,min=32"`
	SessionTTL time.Duration `koanf:"session_ttl" validate:"gt=0"`
}

//
// Rate-limit section
//

// RateLimit configures both the per-session attempt counter and the
// per-IP request limiter in front of the public API.
type RateLimit struct {
	MaxAttempts        int           `koanf:"max_attempts"         validate:"gte=1"`
	Window             time.Duration `koanf:"window"               validate:"gt=0"`
	CountLocalFailures bool          `koanf:"count_local_failures"`

	IPPerSecond float64 `koanf:"ip_per_second" validate:"gt=0"`
	IPBurst     int     `koanf:"ip_burst"      validate:"gte=1"`

	// Sessions caps the number of form sessions kept in memory per form.
	Sessions int `koanf:"sessions" validate:"gte=1"`
}

//
// Forms section
//

// Forms points at optional message overrides.
type Forms struct {
	MessagesDir string `koanf:"messages_dir"`
}

//
// Moderation section
//

type Moderation struct {
	AdminRole       string `koanf:"admin_role"       validate:"required"`
	BacklogSchedule string `koanf:"backlog_schedule" validate:"required,cron"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime.  The loader discovers `Root` (repo root or
// TRAMPO_ROOT override) so later code can build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP       HTTP       `koanf:"http"`
	Database   Database   `koanf:"database"`
	Security   Security   `koanf:"security"`
	RateLimit  RateLimit  `koanf:"ratelimit"`
	Forms      Forms      `koanf:"forms"`
	Moderation Moderation `koanf:"moderation"`
	Paths      Paths      `koanf:"-"`
}
