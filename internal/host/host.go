// Package host models the media host whose attachments are mirrored: its
// attachment records, their size metadata and the upload directory layout.
package host

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrAttachmentNotFound = errors.New("attachment not found")

const MimeSVG = "image/svg+xml"

// Attachment is one media item known to the host.
type Attachment struct {
	ID int64 `json:"id"`
	// File is the absolute local path of the original upload.
	File     string    `json:"file"`
	MimeType string    `json:"mime_type"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// IsImage reports whether the host treats the attachment as an image.
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

// IsSVG reports whether the attachment is a vector image. The host generates
// no size variants for those.
func (a *Attachment) IsSVG() bool {
	return a.MimeType == MimeSVG
}

// UploadDir describes where the host writes uploads.
type UploadDir struct {
	// BaseDir is the generic upload root, e.g. /var/www/uploads.
	BaseDir string
	// Subdir is the current upload subdirectory relative to BaseDir, with a
	// leading slash, e.g. /2024/01. Empty when uploads are not nested.
	Subdir string
}

// Path returns the absolute current upload directory.
func (d UploadDir) Path() string {
	return d.BaseDir + d.Subdir
}

// Library resolves attachments by id.
type Library interface {
	Attachment(ctx context.Context, id int64) (*Attachment, error)
	UploadDir() UploadDir
}

// Static is an in-memory Library.
type Static struct {
	mu          sync.RWMutex
	dir         UploadDir
	attachments map[int64]*Attachment
}

// NewStatic creates a library rooted at dir holding the given attachments.
func NewStatic(dir UploadDir, attachments ...*Attachment) *Static {
	s := &Static{dir: dir, attachments: make(map[int64]*Attachment)}
	for _, a := range attachments {
		s.attachments[a.ID] = a
	}
	return s
}

func (s *Static) Attachment(ctx context.Context, id int64) (*Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attachments[id]
	if !ok {
		return nil, ErrAttachmentNotFound
	}
	return a, nil
}

func (s *Static) UploadDir() UploadDir {
	return s.dir
}

// Put adds or replaces an attachment.
func (s *Static) Put(a *Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments[a.ID] = a
}

// Remove forgets an attachment.
func (s *Static) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attachments, id)
}
