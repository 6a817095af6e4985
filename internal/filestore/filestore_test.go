package filestore

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	s, err := New(Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "dispute-attachments",
	})
	require.NoError(t, err)
	return s
}

func TestNewKey(t *testing.T) {
	key := NewKey("disputes/7", "../../etc/photo.jpg")

	assert.True(t, strings.HasPrefix(key, "disputes/7/"))
	assert.True(t, strings.HasSuffix(key, "/photo.jpg"))
	assert.NotEqual(t, key, NewKey("disputes/7", "photo.jpg"))
}

func TestStore_PresignedURLs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		presign func(ctx context.Context, key string) (string, error)
	}{
		{name: "Upload", presign: s.UploadURL},
		{name: "Download", presign: s.DownloadURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.presign(ctx, "disputes/7/abc/photo.jpg")
			require.NoError(t, err)

			u, err := url.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "localhost:9000", u.Host)
			assert.Equal(t, "/dispute-attachments/disputes/7/abc/photo.jpg", u.Path)
			assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
		})
	}
}
