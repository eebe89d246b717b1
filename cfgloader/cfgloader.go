// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

// MustLoad loads ${ENVIRONMENT}.yaml from the config directory (./config by default),
// applies `default` tags and runs `validate` tags. Any failure is logged and the
// process exits with status 1.
//
// Example:
//
//	type Config struct {
//	    Delay  time.Duration `yaml:"delay" default:"1s"`
//	    People []string      `yaml:"people" validate:"min=1"`
//	}
func MustLoad[T any](opts ...Option) T {
	o := buildOptions(opts)

	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		slog.Error(
			"[cfgloader]: ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
		)
		os.Exit(1)
	}

	config, err := LoadFile[T](filepath.Join(o.dir, env+".yaml"), opts...)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	return config
}

// LoadFile reads, expands, unmarshals, defaults and validates the YAML file at path.
func LoadFile[T any](path string, opts ...Option) (T, error) {
	var config T

	if reflect.ValueOf(config).Kind() == reflect.Ptr {
		return config, errx.New("[cfgloader]: config type must not be a pointer", errx.WithCode(CodeInvalidTarget))
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New("[cfgloader]: config file not found",
			errx.WithCode(CodeFileNotFound),
			errx.WithDetails(errx.D{"path": path}))
	}
	if err != nil {
		return config, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.New(fmt.Sprintf("[cfgloader]: failed to unmarshal %s: %v", path, err),
			errx.WithCode(CodeInvalidYAML))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err)
	}

	if err = validateConfig(&config); err != nil {
		return config, err
	}

	if !buildOptions(opts).silent {
		printConfig(config)
	}

	return config, nil
}

func validateConfig(config any) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)

	failedFields := make([]string, 0)
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint: errorlint // validator returns the concrete type
		for _, fe := range errs {
			tagErr := fe.Tag()
			if fe.Param() != "" {
				tagErr += "=" + fe.Param()
			}
			failedFields = append(failedFields, fmt.Sprintf("%s: %s", fe.Namespace(), tagErr))
		}
	}

	if len(failedFields) > 0 {
		return errx.New("[cfgloader]: invalid config fields -> "+strings.Join(failedFields, ",  "),
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation))
	}
	return nil
}
