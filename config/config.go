package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	// DefaultWorkspaceID is the workspace every self-provisioned account lands in.
	DefaultWorkspaceID = "starter"

	// OWASP-recommended argon2id parameters.
	defaultArgon2Time       = 1
	defaultArgon2MemoryKiB  = 64 * 1024
	defaultArgon2Threads    = 4
	defaultArgon2SaltLength = 16
	defaultArgon2KeyLength  = 32

	defaultNotificationTimeout = 10 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Migration *MigrationConfig `json:"migration" yaml:"migration"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	// Hashing holds the process-wide argon2id parameters. They are read once at start-up.
	Hashing *HashingConfig `json:"hashing" yaml:"hashing"`

	Workspace *WorkspaceConfig `json:"workspace" yaml:"workspace"`

	Notification *NotificationConfig `json:"notification" yaml:"notification"`
}

// MigrationConfig controls the embedded schema migrations run at start-up.
type MigrationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// HashingConfig defines argon2id cost parameters
type HashingConfig struct {
	Time       uint32 `json:"time" yaml:"time"`
	MemoryKiB  uint32 `json:"memoryKiB" yaml:"memoryKiB"`
	Threads    uint8  `json:"threads" yaml:"threads"`
	SaltLength uint32 `json:"saltLength" yaml:"saltLength"`
	KeyLength  uint32 `json:"keyLength" yaml:"keyLength"`
}

// WorkspaceConfig defines the workspace new accounts are provisioned into
type WorkspaceConfig struct {
	DefaultID string `json:"defaultId" yaml:"defaultId"`
}

// NotificationConfig defines how account notifications are delivered.
type NotificationConfig struct {
	// Provider type: "" or "none" disables delivery, "webhook" posts JSON, "topic" publishes to a gocloud.dev topic
	Provider string `json:"provider" yaml:"provider"`

	// Webhook endpoint (for webhook provider)
	WebhookURL string `json:"webhookUrl" yaml:"webhookUrl"`

	// gocloud.dev topic URL, e.g. mem://accounts or gcppubsub://projects/p/topics/t (for topic provider)
	TopicURL string `json:"topicUrl" yaml:"topicUrl"`

	// Upper bound for a single delivery attempt
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	// Registration pre-checks and the password existence check must read the primary.
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = nil
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Workspace == nil {
		cfg.Workspace = &WorkspaceConfig{}
	}
	if strings.TrimSpace(cfg.Workspace.DefaultID) == "" {
		cfg.Workspace.DefaultID = DefaultWorkspaceID
	}

	if cfg.Hashing == nil {
		cfg.Hashing = &HashingConfig{}
	}
	if cfg.Hashing.Time == 0 {
		cfg.Hashing.Time = defaultArgon2Time
	}
	if cfg.Hashing.MemoryKiB == 0 {
		cfg.Hashing.MemoryKiB = defaultArgon2MemoryKiB
	}
	if cfg.Hashing.Threads == 0 {
		cfg.Hashing.Threads = defaultArgon2Threads
	}
	if cfg.Hashing.SaltLength == 0 {
		cfg.Hashing.SaltLength = defaultArgon2SaltLength
	}
	if cfg.Hashing.KeyLength == 0 {
		cfg.Hashing.KeyLength = defaultArgon2KeyLength
	}

	if cfg.Notification == nil {
		cfg.Notification = &NotificationConfig{}
	}
	if cfg.Notification.Timeout <= 0 {
		cfg.Notification.Timeout = defaultNotificationTimeout
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
