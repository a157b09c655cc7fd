package gcp

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type ObjectStorageMode string

const (
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"
)

// ObjectStorageConfig selects where avatar objects live and how the client
// authenticates against it.
type ObjectStorageConfig struct {
	Mode         ObjectStorageMode
	EmulatorHost string
	// Credentials is inline service-account JSON or a path to one. Empty
	// means application default credentials.
	Credentials string
	// CompatibilityFallback marks an emulator picked only because
	// STORAGE_EMULATOR_HOST was set.
	CompatibilityFallback bool
}

func (cfg ObjectStorageConfig) IsEmulatorMode() bool {
	return cfg.Mode == ObjectStorageModeGCSEmulator
}

type ObjectStorageConfigError struct {
	Mode         string
	EmulatorHost string
	Reason       string
}

func (e *ObjectStorageConfigError) Error() string {
	if e == nil {
		return "invalid object storage config"
	}
	return fmt.Sprintf("invalid object storage config (mode=%q emulator_host=%q): %s", e.Mode, e.EmulatorHost, e.Reason)
}

// ResolveObjectStorageConfigFromEnv builds the avatar bucket settings from
// OBJECT_STORAGE_MODE, STORAGE_EMULATOR_HOST and the GOOGLE_APPLICATION_CREDENTIALS
// pair.
func ResolveObjectStorageConfigFromEnv() (ObjectStorageConfig, error) {
	cfg := ObjectStorageConfig{
		EmulatorHost: strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")),
		Credentials:  firstEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "GOOGLE_APPLICATION_CREDENTIALS"),
	}
	raw := strings.TrimSpace(os.Getenv("OBJECT_STORAGE_MODE"))
	switch mode := ObjectStorageMode(strings.ToLower(raw)); mode {
	case "":
		cfg.Mode = ObjectStorageModeGCS
		if cfg.EmulatorHost != "" {
			cfg.Mode = ObjectStorageModeGCSEmulator
			cfg.CompatibilityFallback = true
		}
	case ObjectStorageModeGCS, ObjectStorageModeGCSEmulator:
		cfg.Mode = mode
	default:
		return cfg, &ObjectStorageConfigError{Mode: raw, Reason: "allowed modes are gcs and gcs_emulator"}
	}
	return cfg, cfg.Validate()
}

func (cfg ObjectStorageConfig) Validate() error {
	switch cfg.Mode {
	case ObjectStorageModeGCS:
		return nil
	case ObjectStorageModeGCSEmulator:
		if cfg.EmulatorHost == "" {
			return &ObjectStorageConfigError{Mode: string(cfg.Mode), Reason: "STORAGE_EMULATOR_HOST is required"}
		}
		u, err := url.Parse(cfg.EmulatorHost)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &ObjectStorageConfigError{
				Mode:         string(cfg.Mode),
				EmulatorHost: cfg.EmulatorHost,
				Reason:       "expected absolute URL like http://fake-gcs:4443",
			}
		}
		return nil
	default:
		return &ObjectStorageConfigError{Mode: string(cfg.Mode), Reason: "unsupported mode"}
	}
}

// ClientOptions returns the storage client options for this config. The
// emulator path also exports STORAGE_EMULATOR_HOST, which is how the
// storage client discovers it.
func (cfg ObjectStorageConfig) ClientOptions() []option.ClientOption {
	if cfg.IsEmulatorMode() {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", strings.TrimRight(cfg.EmulatorHost, "/"))
		return []option.ClientOption{option.WithoutAuthentication()}
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	switch {
	case cfg.Credentials == "":
	case strings.HasPrefix(cfg.Credentials, "{"):
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Credentials)))
	default:
		opts = append(opts, option.WithCredentialsFile(cfg.Credentials))
	}
	return opts
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
