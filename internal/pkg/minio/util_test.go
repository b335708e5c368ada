package minio

import (
	"Murmur/internal/api/config"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestClient(t *testing.T, cfg config.MinIOConfig) {
	t.Helper()
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("test", "test", ""),
		Secure: cfg.UseSSL,
	})
	require.NoError(t, err)

	Client = client
	Bucket = cfg.Bucket
	config.Cfg = &config.Config{MinIO: cfg}
	t.Cleanup(func() {
		Client = nil
		Bucket = ""
		config.Cfg = nil
	})
}

func TestGetPublicURLDisabled(t *testing.T) {
	// 未初始化时对象键原样返回
	assert.Equal(t, "2026/01/01/pic.png", GetPublicURL("2026/01/01/pic.png"))
	assert.Equal(t, "", GetPublicURL(""))
	assert.False(t, Enabled())
}

func TestGetPublicURLEndpoint(t *testing.T) {
	setupTestClient(t, config.MinIOConfig{
		Endpoint: "media.local:9000",
		Bucket:   "murmur-media",
	})
	assert.True(t, Enabled())

	url := GetPublicURL("2026/01/01/pic.png")
	assert.Equal(t, "http://media.local:9000/murmur-media/2026/01/01/pic.png", url)
}

func TestGetPublicURLBaseURL(t *testing.T) {
	setupTestClient(t, config.MinIOConfig{
		Endpoint:      "media.local:9000",
		Bucket:        "murmur-media",
		PublicBaseURL: "https://cdn.example.com",
	})

	url := GetPublicURL("2026/01/01/clip.mp4")
	assert.Equal(t, "https://cdn.example.com/murmur-media/2026/01/01/clip.mp4", url)
}
