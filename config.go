package fieldcrypt

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvDatabaseKey          = "FIELDCRYPT_DATABASE_KEY"
	EnvInitialisationVector = "FIELDCRYPT_INITIALISATION_VECTOR"
	EnvIterations           = "FIELDCRYPT_ITERATIONS"
)

var validate = validator.New()

// Config is the settings surface of a data store.
//
// DatabaseKey and InitialisationVector must not change once any value has been
// stored under them; previously written ciphertext would become unreadable.
// Nothing here can detect such a change.
type Config struct {
	// DatabaseKey is the secret passphrase. Required.
	DatabaseKey string `validate:"required"`

	// InitialisationVector, when set, makes every untagged field deterministic.
	InitialisationVector string

	// Iterations is the PBKDF2 round count. Zero means DefaultIterations.
	Iterations int `validate:"gte=0"`
}

// Validate checks the configuration and returns a KindConfig error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	switch verrs[0].Field() {
	case "DatabaseKey":
		return ErrEmptySecret
	case "Iterations":
		return ErrInvalidIterations
	default:
		return fmt.Errorf("%w: %s", ErrConfig, verrs[0].Error())
	}
}

// Options converts the configuration into cipher options.
func (c Config) Options() []Option {
	opts := []Option{WithSecret(c.DatabaseKey)}
	if c.InitialisationVector != "" {
		opts = append(opts, WithGlobalIV(c.InitialisationVector))
	}
	if c.Iterations != 0 {
		opts = append(opts, WithIterations(c.Iterations))
	}
	return opts
}

// NewFromConfig validates cfg and creates a Cipher from it.
// Extra options are applied after the configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Cipher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(append(cfg.Options(), opts...)...)
}

// LoadConfig reads the configuration from the process environment, falling
// back to the given dotenv files. Process environment wins, matching
// godotenv.Load. The environment is not modified.
func LoadConfig(files ...string) (Config, error) {
	fileEnv := map[string]string{}
	if len(files) > 0 {
		var err error
		fileEnv, err = godotenv.Read(files...)
		if err != nil {
			return Config{}, fmt.Errorf("%w: reading env files: %v", ErrConfig, err)
		}
	}

	lookup := func(key string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return fileEnv[key]
	}

	cfg := Config{
		DatabaseKey:          lookup(EnvDatabaseKey),
		InitialisationVector: lookup(EnvInitialisationVector),
		Iterations:           DefaultIterations,
	}

	if raw := lookup(EnvIterations); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidIterations, EnvIterations, raw)
		}
		cfg.Iterations = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
