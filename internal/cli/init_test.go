package cli

import (
	"os"
	"path/filepath"
	"testing"

	"finsight/internal/config"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FINSIGHT_TEST_VALUE=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINSIGHT_TEST_VALUE", "")
	os.Unsetenv("FINSIGHT_TEST_VALUE")

	LoadEnvFile(path)
	if got := os.Getenv("FINSIGHT_TEST_VALUE"); got != "from-dotenv" {
		t.Fatalf("FINSIGHT_TEST_VALUE = %q", got)
	}

	// A missing file is not an error.
	LoadEnvFile(filepath.Join(dir, "missing.env"))
}

func TestSetupLogger(t *testing.T) {
	logger, err := SetupLogger(&config.Config{LogLevel: "debug", LogFormat: "json"})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	if logger.Component() != "app" {
		t.Errorf("component = %q", logger.Component())
	}
	if _, err := SetupLogger(&config.Config{LogLevel: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
