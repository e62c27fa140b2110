package publish

import (
	"os"
	"path/filepath"
	"testing"
)

func setS3Env(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{EnvAccessKey, EnvSecretKey, EnvEndpoint, EnvRegion, EnvBucket, EnvPrefix, EnvACL, EnvCDNURL} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	setS3Env(t, map[string]string{
		EnvAccessKey: "key",
		EnvSecretKey: "secret",
		EnvBucket:    "renders",
		EnvPrefix:    "/gallery/",
	})

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want default us-east-1", cfg.Region)
	}
	if cfg.ACL != "public-read" {
		t.Errorf("ACL = %q, want default public-read", cfg.ACL)
	}
	if cfg.Prefix != "gallery" {
		t.Errorf("Prefix = %q, want gallery", cfg.Prefix)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	setS3Env(t, map[string]string{EnvBucket: "from-env"})

	envFile := filepath.Join(t.TempDir(), ".env")
	content := EnvAccessKey + "=file-key\n" +
		EnvSecretKey + "=file-secret\n" +
		EnvBucket + "=from-file\n" +
		EnvEndpoint + "=http://localhost:9000\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvAccessKey)
		os.Unsetenv(EnvSecretKey)
		os.Unsetenv(EnvEndpoint)
	})

	cfg, err := LoadConfig(envFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AccessKey != "file-key" || cfg.SecretKey != "file-secret" {
		t.Errorf("credentials = %q/%q, want values from file", cfg.AccessKey, cfg.SecretKey)
	}
	if cfg.Bucket != "from-env" {
		t.Errorf("Bucket = %q, environment should win over the file", cfg.Bucket)
	}
	if cfg.Endpoint != "http://localhost:9000" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
}

func TestLoadConfigMissingFileIsIgnored(t *testing.T) {
	setS3Env(t, map[string]string{EnvAccessKey: "k", EnvSecretKey: "s", EnvBucket: "b"})
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadConfig: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"complete", Config{AccessKey: "k", SecretKey: "s", Bucket: "b"}, false},
		{"no bucket", Config{AccessKey: "k", SecretKey: "s"}, true},
		{"no access key", Config{SecretKey: "s", Bucket: "b"}, true},
		{"no secret", Config{AccessKey: "k", Bucket: "b"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfigURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"cdn", Config{Bucket: "b", CDNURL: "https://cdn.example.com", Prefix: "p"}, "https://cdn.example.com/p/scene.png"},
		{"endpoint", Config{Bucket: "b", Endpoint: "http://localhost:9000/"}, "http://localhost:9000/b/scene.png"},
		{"aws", Config{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com/scene.png"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.URL(tc.cfg.Key("scene.png")); got != tc.want {
				t.Errorf("URL = %q, want %q", got, tc.want)
			}
		})
	}
}
