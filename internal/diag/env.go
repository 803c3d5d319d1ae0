package diag

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/genaicheck/pkg/constants"
)

// LookupFunc reads an environment variable. It matches os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// EnvVar is one entry of the configuration dump. Value is nil when unset.
type EnvVar struct {
	Name  string  `yaml:"name"`
	Value *string `yaml:"value"`
}

// DumpEnv logs the named variables, or the default five when names is
// empty. Unset variables are logged as null. When mask is set, values of
// variables ending in _KEY keep only their last four characters.
func DumpEnv(logger *zerolog.Logger, lookup LookupFunc, mask bool, names ...string) []EnvVar {
	if len(names) == 0 {
		names = constants.DefaultEnvVars
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	logger.Info().Msg("Environment variables:")

	vars := make([]EnvVar, 0, len(names))
	for _, name := range names {
		event := logger.Info().Str("name", name)

		value, ok := lookup(name)
		if !ok {
			event.Interface("value", nil).Msg("env")
			vars = append(vars, EnvVar{Name: name})
			continue
		}

		if mask && isSecret(name) {
			value = maskSecret(value)
		}
		event.Str("value", value).Msg("env")
		vars = append(vars, EnvVar{Name: name, Value: &value})
	}
	return vars
}

func isSecret(name string) bool {
	return strings.HasSuffix(strings.ToUpper(name), "_KEY")
}

// maskSecret keeps the last four characters of values longer than eight.
func maskSecret(value string) string {
	const visible = 4
	if len(value) <= 2*visible {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-visible) + value[len(value)-visible:]
}
