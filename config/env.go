// Package config merges settings from three layers, later layers winning:
// built-in defaults, config/app.json, then .env. Process environment
// variables override all of them, so deployments can tune a single key
// without touching files.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultMongoURI   = "mongodb://localhost:27017"
	defaultMongoDB    = "tukoshop"
	defaultJWTSecret  = "change-me-in-production"
	defaultAppPort    = "8080"
	defaultAppEnv     = "local"
	defaultQueue      = "memory"
	defaultRedisAddr  = "localhost:6379"
	defaultAdminUser  = "admin"
	defaultCORSOrigin = "*"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaults()
)

func defaults() map[string]string {
	return map[string]string{
		"MONGO_URI":      defaultMongoURI,
		"MONGO_DB":       defaultMongoDB,
		"JWT_SECRET":     defaultJWTSecret,
		"APP_PORT":       defaultAppPort,
		"APP_ENV":        defaultAppEnv,
		"QUEUE_DRIVER":   defaultQueue,
		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
		"ADMIN_USERNAME": defaultAdminUser,
		"CORS_ORIGIN":    defaultCORSOrigin,
	}
}

// Load reads config/app.json and .env (both optional). Safe to call more
// than once; only the first call does work.
func Load() error {
	loadOnce.Do(func() {
		merged := defaults()
		for _, src := range []func(map[string]string) error{
			func(m map[string]string) error { return overlayJSON("config/app.json", m) },
			func(m map[string]string) error { return overlayDotEnv(".env", m) },
		} {
			if err := src(merged); err != nil {
				loadErr = err
				return
			}
		}

		mu.Lock()
		values = merged
		mu.Unlock()
	})
	return loadErr
}

// overlayJSON merges the string values of a flat JSON object into out,
// uppercasing keys so "app_port" and "APP_PORT" collide as intended. A
// missing file is not an error.
func overlayJSON(path string, out map[string]string) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}
		setKey(out, key, s)
	}
	return nil
}

// overlayDotEnv merges KEY=value lines into out. Blank lines and #-comments
// are skipped; single or double quotes around values are stripped. A missing
// file is not an error.
func overlayDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		setKey(out, key, strings.Trim(strings.TrimSpace(value), `"'`))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func setKey(out map[string]string, key, value string) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if k != "" {
		out[k] = strings.TrimSpace(value)
	}
}

// get resolves key with precedence: process env, merged files, fallback.
func get(key, fallback string) string {
	if env, ok := os.LookupEnv(key); ok && strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env)
	}

	mu.RLock()
	defer mu.RUnlock()
	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}
	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// MongoURI returns the MongoDB connection string.
func MongoURI() string { return Get("MONGO_URI", defaultMongoURI) }

// MongoDB returns the database name holding the four marketplace collections.
func MongoDB() string { return Get("MONGO_DB", defaultMongoDB) }

func JWTSecret() string { return Get("JWT_SECRET", defaultJWTSecret) }

func AppPort() string { return Get("APP_PORT", defaultAppPort) }

func AppEnv() string { return Get("APP_ENV", defaultAppEnv) }

// QueueDriver selects the reconciliation queue backend: "memory" or "redis".
// Anything else falls back to "memory".
func QueueDriver() string {
	driver := strings.ToLower(Get("QUEUE_DRIVER", defaultQueue))
	switch driver {
	case "memory", "redis":
		return driver
	default:
		return defaultQueue
	}
}

func RedisAddr() string { return Get("REDIS_ADDR", defaultRedisAddr) }

func RedisPassword() string { return Get("REDIS_PASSWORD", "") }

// AdminUsername is the account name used by the admin:create command.
func AdminUsername() string { return Get("ADMIN_USERNAME", defaultAdminUser) }

func CORSOrigin() string { return Get("CORS_ORIGIN", defaultCORSOrigin) }
