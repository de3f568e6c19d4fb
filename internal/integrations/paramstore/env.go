package paramstore

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvGetter resolves parameters from environment variables, for the
// standalone server where no Parameter Store is available. A name like
// "/honeypot/gemini-api-key" maps to GEMINI_API_KEY: the prefix is stripped
// and the remainder upper-snake-cased.
type EnvGetter struct {
	prefix string
}

// NewEnvGetter creates an EnvGetter that strips the given name prefix.
func NewEnvGetter(prefix string) *EnvGetter {
	return &EnvGetter{prefix: strings.TrimRight(strings.TrimSpace(prefix), "/")}
}

func (g *EnvGetter) GetParameter(_ context.Context, name string) (string, error) {
	key := envKey(strings.TrimPrefix(strings.TrimSpace(name), g.prefix))
	if key == "" {
		return "", fmt.Errorf("paramstore: cannot map parameter %q to an environment variable", name)
	}
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("paramstore: environment variable %s is not set", key)
	}
	return v, nil
}

func envKey(name string) string {
	name = strings.Trim(name, "/")
	if name == "" {
		return ""
	}
	r := strings.NewReplacer("/", "_", "-", "_", ".", "_")
	return strings.ToUpper(r.Replace(name))
}
