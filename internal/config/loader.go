// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from four layers (highest
precedence last):

  1. Built-in defaults (`defaults` below).
  2. Optional `<root>/conf/.env` file, loaded into the process environment.
  3. `conf/global.yaml`, when present.
  4. Environment variables prefixed `TRAMPO_`, where `__` maps to “.”
     (e.g., `TRAMPO_RATELIMIT__MAX_ATTEMPTS → ratelimit.max_attempts`).

After merging, every string starting with `vault:` is replaced by the
secret it names, then the tree is unmarshalled into typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.

Instrumentation
---------------
  • DEBUG spans: root discovery, YAML read.
  • ERROR spans: YAML parse, env overlay, secret resolution, unmarshal,
    validation failures.
  • INFO span: final “config loaded” with key highlights.
  • Logs use the global sugared logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.
*/
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/edupaziani/trampo-conecta-talentos/internal/vault"
)

const envPrefix = "TRAMPO_"

var current atomic.Pointer[Config]

// SecretResolver turns a `vault:` reference into its value.  *vault.Client
// satisfies it.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// ErrNoResolver is returned when the tree holds a vault reference but no
// resolver was supplied.
var ErrNoResolver = errors.New("config: vault reference found but no resolver configured")

var defaults = map[string]any{
	"http.listen_addr":               ":8080",
	"http.trusted_proxies":           1,
	"database.driver":                "pgx",
	"database.max_open":              15,
	"database.max_idle":              5,
	"security.session_ttl":           "12h",
	"ratelimit.max_attempts":         5,
	"ratelimit.window":               "15m",
	"ratelimit.count_local_failures": true,
	"ratelimit.ip_per_second":        1.0,
	"ratelimit.ip_burst":             10,
	"ratelimit.sessions":             10000,
	"moderation.admin_role":          "admin",
	"moderation.backlog_schedule":    "@every 1m",
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// RootDir resolves TRAMPO_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to the executable layout, then the cwd.
func RootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	for dir := wd; ; {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads every layer, resolves secrets with sec (may be nil when no
// vault references are used), validates, and caches the Config.
func Load(ctx context.Context, sec SecretResolver) (*Config, error) {
	root := RootDir()
	zap.S().Debugw("config root resolved", "root", root)

	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config default %s: %w", key, err)
		}
	}

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, fmt.Errorf("config yaml %s: %w", yamlPath, err)
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config env: %w", err)
	}

	if err := resolveSecrets(ctx, k, sec); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Paths.Root = root
	if cfg.Forms.MessagesDir != "" && !filepath.IsAbs(cfg.Forms.MessagesDir) {
		cfg.Forms.MessagesDir = filepath.Join(root, cfg.Forms.MessagesDir)
	}
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, fmt.Errorf("config validation: %w", err)
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"db_driver", cfg.Database.Driver,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps TRAMPO_HTTP__LISTEN_ADDR to http.listen_addr.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

// resolveSecrets swaps every vault reference in k for its value.
func resolveSecrets(ctx context.Context, k *koanf.Koanf, sec SecretResolver) error {
	keys := k.Keys()
	sort.Strings(keys)
	for _, key := range keys {
		ref, ok := k.Get(key).(string)
		if !ok || !strings.HasPrefix(ref, vault.RefPrefix) {
			continue
		}
		if sec == nil {
			return fmt.Errorf("%w (%s)", ErrNoResolver, key)
		}
		val, err := sec.Resolve(ctx, ref)
		if err != nil {
			return fmt.Errorf("config secret %s: %w", key, err)
		}
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("config secret %s: %w", key, err)
		}
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload(ctx context.Context, sec SecretResolver) error {
	_, err := Load(ctx, sec)
	return err
}
