// Package uploader coordinates the client upload flow: file validation,
// signed-credential handoff and the direct transfer to the media CDN. The
// flow is an explicit state machine so illegal combinations (for example
// uploading while already uploading) cannot be represented.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rajput-vishal01/videovault/internal/imagekit"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateAwaitingAuthParams
	StateUploading
	StateUploaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingAuthParams:
		return "awaiting_auth_params"
	case StateUploading:
		return "uploading"
	case StateUploaded:
		return "uploaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type FileKind string

const (
	KindVideo FileKind = "video"
	KindImage FileKind = "image"
)

var (
	ErrInvalidFile    = errors.New("invalid file")
	ErrUploadInFlight = errors.New("upload already in flight")
	ErrNotResettable  = errors.New("cannot reset while upload is in flight")
)

// File is the selected local file handed to the flow.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// CredentialSource issues the short-lived signed-upload credentials.
// *imagekit.Client (local issuance) and *imagekit.RemoteAuthClient (the
// collaborator endpoint) both satisfy it.
type CredentialSource interface {
	AuthParams(ctx context.Context) (imagekit.AuthParams, error)
}

// Transfer streams the file bytes to the external media storage.
type Transfer interface {
	Upload(ctx context.Context, params imagekit.AuthParams, fileName string, size int64, file io.Reader, onProgress imagekit.ProgressFunc) (*imagekit.UploadResult, error)
}

// Flow runs one upload at a time. A failed or finished flow must be Reset
// before reuse; there is no automatic retry.
type Flow struct {
	mu       sync.Mutex
	state    State
	reason   string
	kind     FileKind
	maxBytes int64
	creds    CredentialSource
	transfer Transfer
	progress imagekit.ProgressFunc
	now      func() time.Time
}

func NewFlow(creds CredentialSource, transfer Transfer, kind FileKind, maxSizeMB int, onProgress imagekit.ProgressFunc) *Flow {
	return &Flow{
		state:    StateIdle,
		kind:     kind,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		creds:    creds,
		transfer: transfer,
		progress: onProgress,
		now:      time.Now,
	}
}

// State returns the current state and, when failed, the user-visible reason.
func (f *Flow) State() (State, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.reason
}

// Reset returns the flow to Idle so the user can try again.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateValidating, StateAwaitingAuthParams, StateUploading:
		return ErrNotResettable
	}
	f.state = StateIdle
	f.reason = ""
	return nil
}

func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return ErrUploadInFlight
	}
	f.state = StateValidating
	return nil
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Flow) fail(reason string) {
	f.mu.Lock()
	f.state = StateFailed
	f.reason = reason
	f.mu.Unlock()
}

func (f *Flow) validate(file File) error {
	if !strings.HasPrefix(file.ContentType, string(f.kind)+"/") {
		return fmt.Errorf("%w: only %s files are allowed", ErrInvalidFile, f.kind)
	}
	if file.Size <= 0 || file.Size > f.maxBytes {
		return fmt.Errorf("%w: file size must be between 1 byte and %dMB", ErrInvalidFile, f.maxBytes/(1024*1024))
	}
	return nil
}

// Upload drives Idle → Validating → AwaitingAuthParams → Uploading →
// Uploaded, or Failed at the step that broke.
func (f *Flow) Upload(ctx context.Context, file File) (*imagekit.UploadResult, error) {
	if err := f.begin(); err != nil {
		return nil, err
	}

	if err := f.validate(file); err != nil {
		f.fail(err.Error())
		return nil, err
	}

	f.setState(StateAwaitingAuthParams)
	params, err := f.creds.AuthParams(ctx)
	if err != nil {
		f.fail("Could not get upload credentials. Please try again.")
		return nil, err
	}

	f.setState(StateUploading)
	name := fmt.Sprintf("%s_%d_%s", f.kind, f.now().UnixMilli(), file.Name)
	res, err := f.transfer.Upload(ctx, params, name, file.Size, file.Reader, f.progress)
	if err != nil {
		f.fail("Upload failed. Please try again.")
		return nil, err
	}

	f.setState(StateUploaded)
	return res, nil
}
