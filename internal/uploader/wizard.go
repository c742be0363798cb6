package uploader

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rajput-vishal01/videovault/internal/imagekit"
	"github.com/rajput-vishal01/videovault/internal/models"
	"github.com/rajput-vishal01/videovault/internal/services"
)

// Step is the wizard stage layered over the upload flow.
type Step int

const (
	StepUpload Step = iota + 1
	StepDetails
	StepPublished
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepDetails:
		return "details"
	case StepPublished:
		return "published"
	}
	return "unknown"
}

var (
	ErrWrongStep       = errors.New("operation not valid in current step")
	ErrNothingUploaded = errors.New("upload a video first")
	ErrTitleRequired   = errors.New("video title is required")
)

// Publisher persists the metadata once the file is at the CDN.
// *services.VideoService satisfies it.
type Publisher interface {
	Create(ctx context.Context, userID string, req services.CreateVideoRequest) (*models.Video, error)
}

// Notifier receives user-facing lifecycle messages.
type Notifier interface {
	Publish(message, level string)
}

// Details is what the user fills in on the second step.
type Details struct {
	Title       string
	Description string
	Tags        string // comma separated
	Controls    bool
	Quality     int
}

// Wizard is the two-step publish flow: upload, then details. Publishing
// failure keeps the wizard on the details step for resubmission.
type Wizard struct {
	mu        sync.Mutex
	step      Step
	flow      *Flow
	publisher Publisher
	notifier  Notifier
	uploaded  *imagekit.UploadResult
}

func NewWizard(flow *Flow, publisher Publisher, notifier Notifier) *Wizard {
	return &Wizard{step: StepUpload, flow: flow, publisher: publisher, notifier: notifier}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Uploaded() *imagekit.UploadResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploaded
}

func (w *Wizard) notify(message, level string) {
	if w.notifier != nil {
		w.notifier.Publish(message, level)
	}
}

// UploadFile runs the upload flow and, on success, advances to Details.
func (w *Wizard) UploadFile(ctx context.Context, file File) error {
	w.mu.Lock()
	if w.step != StepUpload {
		w.mu.Unlock()
		return ErrWrongStep
	}
	w.mu.Unlock()

	res, err := w.flow.Upload(ctx, file)
	if err != nil {
		w.notify("Upload failed. Please try again.", "error")
		return err
	}

	w.mu.Lock()
	w.uploaded = res
	w.step = StepDetails
	w.mu.Unlock()
	w.notify("Video uploaded successfully!", "success")
	return nil
}

// Publish submits the metadata-create request. On failure the wizard stays
// on Details and the user may resubmit.
func (w *Wizard) Publish(ctx context.Context, userID string, d Details) (*models.Video, error) {
	w.mu.Lock()
	if w.step != StepDetails {
		w.mu.Unlock()
		if w.uploaded == nil {
			return nil, ErrNothingUploaded
		}
		return nil, ErrWrongStep
	}
	uploaded := w.uploaded
	w.mu.Unlock()

	if strings.TrimSpace(d.Title) == "" {
		w.notify("Please enter a video title", "error")
		return nil, ErrTitleRequired
	}

	controls := d.Controls
	req := services.CreateVideoRequest{
		Title:       d.Title,
		Description: d.Description,
		VideoURL:    uploaded.URL,
		Tags:        SplitTags(d.Tags),
		Controls:    &controls,
		Transformation: &models.Transformation{
			Height:  models.DefaultHeight,
			Width:   models.DefaultWidth,
			Quality: d.Quality,
		},
	}

	v, err := w.publisher.Create(ctx, userID, req)
	if err != nil {
		w.notify("Failed to publish video. Please try again.", "error")
		return nil, err
	}

	w.mu.Lock()
	w.step = StepPublished
	w.mu.Unlock()
	w.notify("Video published successfully!", "success")
	return v, nil
}

// Reset returns the wizard (and its flow) to the upload step.
func (w *Wizard) Reset() error {
	if err := w.flow.Reset(); err != nil {
		return err
	}
	w.mu.Lock()
	w.step = StepUpload
	w.uploaded = nil
	w.mu.Unlock()
	return nil
}

// SplitTags turns a comma-separated tag string into trimmed non-empty tags.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
