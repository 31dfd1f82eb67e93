package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Scope is the cloud-platform permission scope the probe authenticates with.
const Scope = "https://www.googleapis.com/auth/cloud-platform"

// DefaultKeyFilePath is where the key file is looked for when neither the
// config nor the environment names one.
const DefaultKeyFilePath = "assets/google_speech.json"

var (
	ErrKeyFileNotFound = errors.New("service account key file not found")
	ErrInvalidKeyFile  = errors.New("invalid service account key file")
)

// ServiceAccount mirrors the fields of a Google service-account key file that
// we validate before handing the file to the client library.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

// Load reads and validates a service-account key file. The parsed form is
// only used for validation and display; the client library re-reads the file
// itself.
func Load(path string) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrKeyFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read key file %s: %w", path, err)
	}

	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidKeyFile, path, err)
	}

	if err := sa.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidKeyFile, path, err)
	}

	return &sa, nil
}

func (sa *ServiceAccount) validate() error {
	if sa.Type != "service_account" {
		return fmt.Errorf("credential type is %q, want %q", sa.Type, "service_account")
	}
	if sa.ProjectID == "" {
		return errors.New("missing project_id")
	}
	if sa.PrivateKey == "" {
		return errors.New("missing private_key")
	}
	if sa.ClientEmail == "" {
		return errors.New("missing client_email")
	}
	return nil
}

// ResolvePath picks the key file path: explicit config value first, then the
// GOOGLE_APPLICATION_CREDENTIALS environment variable, then the fixed default.
func ResolvePath(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); env != "" {
		return env
	}
	return DefaultKeyFilePath
}
