package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TEST_DATABASE_URL", "postgres://tdp:tdp@db:5432/tdp?sslmode=disable")
	t.Setenv("TEST_S3_SECRET", "s3-secret")

	path := writeConfig(t, `
host: reports.example.com
basePath: /v1
database:
  driver: postgres
  source: "{{ .TEST_DATABASE_URL }}"
pulsar:
  url: pulsar://pulsar:6650
  topicProducer: report-files
aws:
  region: us-east-1
  accessKeyId: tdp-uploader
  secretAccessKey: "{{ .TEST_S3_SECRET }}"
  s3:
    bucket: tdp-datafiles
    presignTTL: 5m
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "reports.example.com", cfg.Host)
	assert.Equal(t, "postgres://tdp:tdp@db:5432/tdp?sslmode=disable", cfg.Database.Source)
	assert.Equal(t, "report-files", cfg.Pulsar.TopicProducer)
	assert.Equal(t, "tdp-datafiles", cfg.AWS.S3.Bucket)
	assert.Equal(t, 5*time.Minute, cfg.AWS.S3.PresignTTL)
	assert.Equal(t, "tdp-uploader", cfg.AWS.AccessKeyID)
	assert.Equal(t, "s3-secret", cfg.AWS.SecretAccessKey)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "host: localhost\n")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultBasePath, cfg.BasePath)
	assert.Equal(t, DefaultDBDriver, cfg.Database.Driver)
	assert.Equal(t, DefaultPresignTTL, cfg.AWS.S3.PresignTTL)
}

func TestLoadConfig_MissingPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
