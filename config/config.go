package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "2MB"
	defaultDistanceThreshold  = 0.6
	defaultFaceTimeout        = 15 * time.Second
	defaultTokenTTL           = 24 * time.Hour
	defaultMongoDatabase      = "faceauth"
	defaultMongoCollection    = "users"
	defaultClientTimeout      = 30 * time.Second
)

// Store drivers.
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// legacyEnvAliases maps the variable names of the original dotenv deployment
// (after canonicalization) onto their config keys.
var legacyEnvAliases = map[string]string{
	"port":           "http.port",
	"secret.key":     "secretKey.access",
	"mongo.uri":      "mongo.uri",
	"register.url":   "client.registerUrl",
	"register.route": "client.registerUrl",
}

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

	Store StoreConfig `json:"store" yaml:"store"`

	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	// Face configures the external face-recognition service and matching threshold
	Face *FaceConfig `json:"face" yaml:"face"`

	// Check configures the descriptor extraction endpoint
	Check *CheckConfig `json:"check" yaml:"check"`

	// PubSub configuration for account event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Client is read by the registration form, not by the server
	Client *ClientConfig `json:"client" yaml:"client"`
}

// StoreConfig selects the credential store backend.
type StoreConfig struct {
	Driver      string `json:"driver" yaml:"driver"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
}

// MongoConfig defines the document database connection.
type MongoConfig struct {
	URI        string `json:"uri" yaml:"uri"`
	Database   string `json:"database" yaml:"database"`
	Collection string `json:"collection" yaml:"collection"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
}

// PasswordStrengthConfig defines password strength requirements.
// A nil section disables the policy.
type PasswordStrengthConfig struct {
	MinLength        int      `json:"minLength" yaml:"minLength"`
	MaxLength        int      `json:"maxLength" yaml:"maxLength"`
	RequireUppercase bool     `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool     `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool     `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool     `json:"requireSpecial" yaml:"requireSpecial"`
	ForbiddenWords   []string `json:"forbiddenWords" yaml:"forbiddenWords"`
}

// FaceConfig defines the face-recognition collaborator.
type FaceConfig struct {
	// Base URL of the descriptor extraction service
	ServiceURL string `json:"serviceUrl" yaml:"serviceUrl"`

	// Maximum euclidean distance for two descriptors to count as the same face
	DistanceThreshold float64 `json:"distanceThreshold" yaml:"distanceThreshold"`

	// Per-call timeout for the extraction service
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Skip the start-up health probe (the service may come up later)
	SkipStartupProbe bool `json:"skipStartupProbe" yaml:"skipStartupProbe"`
}

// CheckConfig defines limits on the public descriptor extraction endpoint.
type CheckConfig struct {
	// Requests per second per client IP; 0 disables the limiter
	RateLimit float64 `json:"rateLimit" yaml:"rateLimit"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// ClientConfig is used by the registration form.
type ClientConfig struct {
	RegisterURL string        `json:"registerUrl" yaml:"registerUrl"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	koanfInstance := koanf.New(".")

	configFile, err := findConfigFile(currEnv+".yaml", configPath...)
	if err != nil {
		return nil, err
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	return unmarshalWithEnv[T](koanfInstance, currEnv)
}

// findConfigFile returns the first name found in the working directory or in
// one of dirs, which are relative to it.
func findConfigFile(name string, dirs ...string) (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "os.Getwd")
	}

	for _, dir := range append([]string{defaultPath}, dirs...) {
		candidate := filepath.Join(pwd, dir, name)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s not found in %v", name, dirs)
}

// LoadFromEnv builds a config from environment variables only.
func LoadFromEnv[T any]() (*T, error) {
	return unmarshalWithEnv[T](koanf.New("."), "env")
}

func unmarshalWithEnv[T any](koanfInstance *koanf.Koanf, name string) (*T, error) {
	cfg := new(T)
	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: MONGO_URI -> mongo.uri, SECRETKEY_ACCESS -> secretKey.access
			return resolveEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	return cfg, nil
}

// loadDotEnv reads .env files into the process environment without
// overriding variables that are already set.
func loadDotEnv(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// A malformed .env is ignored; real variables still apply.
		_ = godotenv.Load(path)
	}
}

func New() (*Config, error) {
	loadDotEnv(".env", "../.env")

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewClient loads the registration form configuration from the environment.
func NewClient() (*ClientConfig, error) {
	loadDotEnv(".env")

	cfg, err := LoadFromEnv[Config]()
	if err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		client = &ClientConfig{}
	}
	if client.Timeout <= 0 {
		client.Timeout = defaultClientTimeout
	}

	return client, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreDriverMongo
	}

	if cfg.Mongo == nil {
		cfg.Mongo = &MongoConfig{}
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDatabase
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = defaultMongoCollection
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}

	if cfg.Face == nil {
		cfg.Face = &FaceConfig{}
	}
	if cfg.Face.DistanceThreshold <= 0 {
		cfg.Face.DistanceThreshold = defaultDistanceThreshold
	}
	if cfg.Face.Timeout <= 0 {
		cfg.Face.Timeout = defaultFaceTimeout
	}
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case StoreDriverMongo:
		if cfg.Mongo.URI == "" {
			return errors.New("mongo.uri (MONGO_URI) is required for the mongo store")
		}
	case StoreDriverPostgres:
		if cfg.Postgres == nil {
			return errors.New("postgres section is required for the postgres store")
		}
	case StoreDriverMemory:
	default:
		return errors.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}

	if cfg.SecretKey.Access == "" {
		return errors.New("secretKey.access (SECRET_KEY) must be provided")
	}

	return nil
}

func resolveEnvKey(rawKey string, existing map[string]any) string {
	key := canonicalizeEnvKey(rawKey, existing)
	if alias, ok := legacyEnvAliases[strings.ToLower(key)]; ok {
		return alias
	}

	return key
}

// canonicalizeEnvKey turns MONGO_URI into mongo.uri, reusing the spelling of
// keys already present in the YAML tree so FACE_SERVICEURL lands on
// face.serviceUrl. Unknown segments are kept lower-case.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	var path []string
	level := existing
	for _, segment := range strings.FieldsFunc(strings.ToLower(rawKey), func(r rune) bool { return r == '_' }) {
		var key string
		key, level = lookupKey(level, segment)
		path = append(path, key)
	}

	return strings.Join(path, ".")
}

func lookupKey(level map[string]any, segment string) (string, map[string]any) {
	want := foldKey(segment)
	for key, value := range level {
		if foldKey(key) == want {
			child, _ := value.(map[string]any)

			return key, child
		}
	}

	return segment, nil
}

func foldKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}

		return -1
	}, s)
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
