package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  sk-123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(Source{Name: "api key", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sk-123" {
		t.Errorf("got %q, want %q", got, "sk-123")
	}
}

func TestLoadFilePrecedesEnvAndValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SECRETS_TEST_KEY", "from-env")

	got, err := Load(Source{File: path, Env: "SECRETS_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Errorf("got %q, want %q", got, "from-file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SECRETS_TEST_KEY", " from-env ")

	got, err := Load(Source{Env: "SECRETS_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Errorf("got %q, want %q", got, "from-env")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     Source
		wantSub string
	}{
		{
			name:    "nothing configured",
			src:     Source{Name: "gemini api key"},
			wantSub: "gemini api key is not configured",
		},
		{
			name:    "missing file",
			src:     Source{File: filepath.Join(t.TempDir(), "missing")},
			wantSub: "reading secret from file",
		},
		{
			name:    "empty env falls through to missing value",
			src:     Source{Env: "SECRETS_TEST_UNSET"},
			wantSub: "is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadEmptyFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Errorf("expected an empty-file error, got %v", err)
	}
}
