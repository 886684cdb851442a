package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that steer loading itself.
const (
	EnvPrefix  = "SALARY_"
	EnvConfig  = "SALARY_CONFIG"
	EnvEnvFile = "SALARY_ENV_FILE"

	defaultEnvFile = ".env"
)

// Load builds a Config by layering defaults, .env, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file (SALARY_ENV_FILE, or ./.env when present); it only fills
//     variables that are not already set in the process environment
//  3. file (YAML) if SALARY_CONFIG is set
//  4. env (prefix SALARY_)
func Load(ctx context.Context) (*Config, error) {
	const op = "config.load"
	_ = ctx

	base := New()

	if err := loadDotEnv(); err != nil {
		return nil, loadErr(op, err)
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, loadErr(op, err)
		}
	}

	// SALARY_GENERIC_PATH -> generic_path; list values are comma separated.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		switch key {
		case "cors_origins":
			return key, splitList(value)
		case "metrics_labels":
			// name=value pairs: SALARY_METRICS_LABELS=deployment=prod,zone=a
			labels := map[string]interface{}{}
			for _, pair := range splitList(value) {
				if name, val, ok := strings.Cut(pair, "="); ok && strings.TrimSpace(name) != "" {
					labels[strings.TrimSpace(name)] = strings.TrimSpace(val)
				}
			}
			return key, labels
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, loadErr(op, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadErr(op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv applies an explicit or implicit .env file. A missing implicit
// file is fine; a missing explicit one is an error.
func loadDotEnv() error {
	path, explicit := os.LookupEnv(EnvEnvFile)
	if !explicit || path == "" {
		path = defaultEnvFile
		explicit = false
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// splitList splits a comma separated value, dropping blanks.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
