package imagekit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignKnownVector(t *testing.T) {
	// hex(HMAC-SHA1("token-abc" + "1750000000", "private_key_test"))
	got := Sign("token-abc", 1750000000, "private_key_test")
	assert.Equal(t, "da4ec7fd562cc5163f91d05030598b4f4a3a219c", got)

	assert.Equal(t, "0b78047a17a4a9de0690a11fd7917a8249414bbc", Sign("tok", 1700000000, "secret"))
}

func TestNewAuthParams(t *testing.T) {
	c := NewClient("pub", "priv", "http://unused", 30*time.Minute)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	p := c.NewAuthParams()
	assert.NotEmpty(t, p.Token)
	assert.Equal(t, fixed.Add(30*time.Minute).Unix(), p.Expire)
	assert.Equal(t, Sign(p.Token, p.Expire, "priv"), p.Signature)

	// tokens are single-use
	assert.NotEqual(t, p.Token, c.NewAuthParams().Token)
}

func TestUploadSendsMultipartAndReportsProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 4096)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "clip.mp4", r.FormValue("fileName"))
		assert.Equal(t, "pub", r.FormValue("publicKey"))
		assert.NotEmpty(t, r.FormValue("token"))
		assert.NotEmpty(t, r.FormValue("signature"))
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UploadResult{
			URL: "https://ik.imagekit.io/demo/clip.mp4", FileID: "f1", Name: "clip.mp4", Size: int64(len(payload)),
		})
	}))
	defer srv.Close()

	c := NewClient("pub", "priv", srv.URL, time.Minute)
	var progress []int
	res, err := c.Upload(context.Background(), c.NewAuthParams(), "clip.mp4", int64(len(payload)),
		bytes.NewReader(payload), func(p int) { progress = append(progress, p) })
	require.NoError(t, err)
	assert.Equal(t, "https://ik.imagekit.io/demo/clip.mp4", res.URL)
	assert.Equal(t, "f1", res.FileID)

	require.NotEmpty(t, progress)
	assert.Equal(t, 0, progress[0])
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
}

func TestUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad signature"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("pub", "priv", srv.URL, time.Minute)
	_, err := c.Upload(context.Background(), c.NewAuthParams(), "clip.mp4", 3,
		strings.NewReader("abc"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
