// Package thumbnail derives CDN preview-image URLs from stored media URLs
// using the ImageKit path and transformation conventions.
package thumbnail

import (
	"net/url"
	"strings"
)

var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".flv"}

// Derive maps a media URL to its CDN thumbnail URL. A path that already ends
// in .jpg is used as the image path; otherwise the CDN's ik-thumbnail.jpg
// sub-path is appended. Video files get a seek-offset transform on top of the
// fixed 400x225 output size.
//
// Malformed input returns "": thumbnail absence is non-fatal downstream, so
// this degrades instead of failing.
func Derive(videoURL string) string {
	if videoURL == "" {
		return ""
	}
	u, err := url.Parse(videoURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	thumbPath := u.Path
	if !strings.HasSuffix(thumbPath, ".jpg") {
		thumbPath += "/ik-thumbnail.jpg"
	}

	lower := strings.ToLower(u.Path)
	isVideo := false
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			isVideo = true
			break
		}
	}

	params := url.Values{}
	if isVideo {
		params.Set("tr", "so-5,w-400,h-225")
	} else {
		params.Set("tr", "w-400,h-225")
	}

	return u.Scheme + "://" + u.Host + thumbPath + "?" + params.Encode()
}

// IsVideoURL reports whether the URL path names a known video container.
func IsVideoURL(mediaURL string) bool {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return false
	}
	lower := strings.ToLower(u.Path)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
