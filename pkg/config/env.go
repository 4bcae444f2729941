package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

func envBool(name string, dst **bool) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = &b
		}
	}
}

func envList(name string, dst *[]string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*dst = out
	}
}

// parseDuration parses a non-negative duration string for field.
func parseDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, invalid("invalid %s %q: %v", field, s, err)
	}
	if d < 0 {
		return 0, invalid("%s must not be negative", field)
	}
	return d, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
