// Package imagekit talks to the external media CDN: it issues the short-lived
// signed-upload credentials consumed by browsers and can push files to the
// upload API directly.
package imagekit

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AuthParams authorizes one direct client-to-CDN upload without routing file
// bytes through this server.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// UploadResult is the descriptor the CDN returns for a stored file.
type UploadResult struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
}

type Client struct {
	publicKey      string
	privateKey     string
	uploadEndpoint string
	authTTL        time.Duration
	http           *http.Client
	now            func() time.Time
}

func NewClient(publicKey, privateKey, uploadEndpoint string, authTTL time.Duration) *Client {
	return &Client{
		publicKey:      publicKey,
		privateKey:     privateKey,
		uploadEndpoint: uploadEndpoint,
		authTTL:        authTTL,
		// uploads deliberately use a plain client with no retry and no
		// overall timeout; large files take as long as they take
		http: &http.Client{},
		now:  time.Now,
	}
}

func (c *Client) PublicKey() string { return c.publicKey }

// NewAuthParams issues signed-upload credentials. The signature is
// hex(HMAC-SHA1(token+expire, privateKey)), the ImageKit authenticator
// contract.
func (c *Client) NewAuthParams() AuthParams {
	token := uuid.NewString()
	expire := c.now().Add(c.authTTL).Unix()
	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: Sign(token, expire, c.privateKey),
	}
}

func Sign(token string, expire int64, privateKey string) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// ProgressFunc receives upload progress as a percentage in [0,100].
type ProgressFunc func(percent int)

// Upload streams the file to the CDN upload API as multipart form data,
// reporting byte progress through onProgress. It never retries; callers own
// the retry decision.
func (c *Client) Upload(ctx context.Context, params AuthParams, fileName string, size int64, file io.Reader, onProgress ProgressFunc) (*UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		fields := map[string]string{
			"fileName":  fileName,
			"publicKey": c.publicKey,
			"token":     params.Token,
			"expire":    strconv.FormatInt(params.Expire, 10),
			"signature": params.Signature,
		}
		for k, v := range fields {
			if err := mw.WriteField(k, v); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := file
		if onProgress != nil && size > 0 {
			// observers expect the bar to start at zero
			onProgress(0)
			src = &progressReader{r: file, total: size, report: onProgress}
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadEndpoint, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upload rejected: status %d: %s", resp.StatusCode, body)
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &out, nil
}

type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	percent := int(p.read * 100 / p.total)
	if percent > 100 {
		percent = 100
	}
	if percent != p.last {
		p.last = percent
		p.report(percent)
	}
	return n, err
}
