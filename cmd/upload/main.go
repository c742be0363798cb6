// Command upload publishes a local video file through the full client flow:
// login, signed-credential handoff, direct CDN transfer, then the
// metadata-create call.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rajput-vishal01/videovault/internal/apiclient"
	"github.com/rajput-vishal01/videovault/internal/httpclient"
	"github.com/rajput-vishal01/videovault/internal/imagekit"
	"github.com/rajput-vishal01/videovault/internal/models"
	"github.com/rajput-vishal01/videovault/internal/notify"
	"github.com/rajput-vishal01/videovault/internal/services"
	"github.com/rajput-vishal01/videovault/internal/uploader"
)

// remotePublisher adapts the API client to the wizard's publisher contract;
// the server derives the user from the session token, so userID is unused.
type remotePublisher struct {
	api *apiclient.Client
}

func (p *remotePublisher) Create(ctx context.Context, _ string, req services.CreateVideoRequest) (*models.Video, error) {
	return p.api.CreateVideo(ctx, req)
}

func main() {
	var (
		server      = flag.String("server", "http://localhost:8080", "VideoVault server base URL")
		email       = flag.String("email", "", "account email")
		password    = flag.String("password", "", "account password")
		filePath    = flag.String("file", "", "video file to upload")
		title       = flag.String("title", "", "video title")
		description = flag.String("description", "", "video description")
		tags        = flag.String("tags", "", "comma-separated tags")
		quality     = flag.Int("quality", 80, "CDN quality hint (1-100)")
		uploadURL   = flag.String("upload-endpoint", "https://upload.imagekit.io/api/v1/files/upload", "media CDN upload API")
		maxSizeMB   = flag.Int("max-size-mb", 100, "maximum file size")
	)
	flag.Parse()

	if *filePath == "" || *title == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	api := apiclient.New(*server)
	if _, err := api.Login(ctx, *email, *password); err != nil {
		log.Fatalf("login: %v", err)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		log.Fatalf("stat file: %v", err)
	}

	creds := imagekit.NewRemoteAuthClient(
		*server+"/api/auth/imagekit-auth",
		httpclient.NewClient(httpclient.ClientConfig{Timeout: 15 * time.Second, RetryMaxElapsed: 30 * time.Second}),
	)
	// prime the account public key; the flow fetches fresh single-use
	// credentials on its own before the transfer
	if _, err := creds.AuthParams(ctx); err != nil {
		log.Fatalf("fetch upload credentials: %v", err)
	}
	transfer := imagekit.NewClient(creds.PublicKey(), "", *uploadURL, 0)

	center := notify.NewCenter(notify.DefaultTTL)
	center.Subscribe(func(n notify.Notification) {
		fmt.Printf("[%s] %s\n", n.Level, n.Message)
	})

	flow := uploader.NewFlow(creds, transfer, uploader.KindVideo, *maxSizeMB, func(percent int) {
		fmt.Printf("\ruploading... %3d%%", percent)
		if percent == 100 {
			fmt.Println()
		}
	})
	wizard := uploader.NewWizard(flow, &remotePublisher{api: api}, centerAdapter{center})

	err = wizard.UploadFile(ctx, uploader.File{
		Name:        filepath.Base(*filePath),
		Size:        info.Size(),
		ContentType: contentTypeFor(*filePath),
		Reader:      f,
	})
	if err != nil {
		log.Fatalf("upload: %v", err)
	}

	v, err := wizard.Publish(ctx, "", uploader.Details{
		Title:       *title,
		Description: *description,
		Tags:        *tags,
		Controls:    true,
		Quality:     *quality,
	})
	if err != nil {
		log.Fatalf("publish: %v", err)
	}
	fmt.Printf("published %q as %s\n", v.Title, v.ID.Hex())
}

type centerAdapter struct{ c *notify.Center }

func (a centerAdapter) Publish(message, level string) { a.c.Publish(message, level) }

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	case ".mkv":
		return "video/x-matroska"
	case ".webm":
		return "video/webm"
	case ".flv":
		return "video/x-flv"
	}
	return "application/octet-stream"
}
