/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config reads the demo binary's settings from the environment,
// after loading an optional .env file.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/suparena/automapper/errors"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreDynamoDB = "dynamodb"
)

// Config captures mapper, server and storage settings.
type Config struct {
	Addr      string
	Strict    bool
	Flatten   bool
	MaxDepth  int
	LogLevel  string
	LogFormat string

	// Profiles is an optional YAML profile file added on top of the built-in ones.
	Profiles string

	Store string
	AWS   AWS
}

// AWS holds the DynamoDB store credentials.
type AWS struct {
	AccessKey string
	SecretKey string
	Region    string
	Table     string
}

// Load reads the given .env files, or .env when none are named, and then
// builds the config from the environment. A missing default .env is not an
// error; a missing named file is.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !stderrors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("failed to load env files: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:      getenv("AUTOMAPPER_ADDR", ":8080"),
		LogLevel:  getenv("AUTOMAPPER_LOG_LEVEL", "info"),
		LogFormat: getenv("AUTOMAPPER_LOG_FORMAT", "text"),
		Profiles:  os.Getenv("AUTOMAPPER_PROFILES"),
		Store:     strings.ToLower(getenv("AUTOMAPPER_STORE", StoreMemory)),
		AWS: AWS{
			AccessKey: os.Getenv("AWS_ACCESS_KEY"),
			SecretKey: os.Getenv("AWS_SECRET_KEY"),
			Region:    os.Getenv("AWS_REGION"),
			Table:     os.Getenv("AWS_DDB_TABLE"),
		},
	}

	var errs []error
	var err error
	if cfg.Strict, err = boolEnv("AUTOMAPPER_STRICT", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.Flatten, err = boolEnv("AUTOMAPPER_FLATTEN", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxDepth, err = intEnv("AUTOMAPPER_MAX_DEPTH", 64); err != nil {
		errs = append(errs, err)
	} else if cfg.MaxDepth < 0 {
		errs = append(errs, errors.NewValidationError("AUTOMAPPER_MAX_DEPTH", "must not be negative"))
	}
	if err := cfg.validateStore(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, stderrors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) validateStore() error {
	switch c.Store {
	case StoreMemory:
		return nil
	case StoreDynamoDB:
		if c.AWS.Table == "" || c.AWS.Region == "" {
			return errors.NewValidationError("AUTOMAPPER_STORE", "dynamodb store needs AWS_DDB_TABLE and AWS_REGION")
		}
		return nil
	default:
		return errors.NewValidationError("AUTOMAPPER_STORE", fmt.Sprintf("unknown store %q", c.Store))
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.NewValidationError(key, fmt.Sprintf("invalid boolean %q", v))
	}
	return b, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.NewValidationError(key, fmt.Sprintf("invalid integer %q", v))
	}
	return n, nil
}
