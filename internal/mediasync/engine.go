// Package mediasync mirrors host media attachments, including every
// generated size variant, into a remote object store.
package mediasync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/thebluefowl/spacesync/internal/config"
	"github.com/thebluefowl/spacesync/internal/host"
	"github.com/thebluefowl/spacesync/internal/storage"
)

// Engine reacts to host attachment events. It holds no state beyond its
// configuration, so one instance may serve concurrent events as long as the
// store is safe for concurrent use.
type Engine struct {
	cfg     config.Config
	store   storage.Store
	library host.Library

	mapper    PathMapper
	filter    *UploadFilter
	resolver  UniqueNameResolver
	validator ConnectionValidator

	logger   *slog.Logger
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver sets the telemetry sink.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// New creates an engine for cfg writing to store.
func New(cfg config.Config, store storage.Store, library host.Library, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		store:     store,
		library:   library,
		mapper:    NewPathMapper(cfg.UploadPath, cfg.StoragePath, library.UploadDir().BaseDir),
		filter:    NewUploadFilter(cfg.Filter),
		resolver:  NewUniqueNameResolver(store),
		validator: NewConnectionValidator(store),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.filter.Err(); err != nil {
		e.logger.Warn("upload filter is malformed, no files will be filtered",
			"filter", cfg.Filter, "error", err)
	}
	return e
}

// Mapper returns the engine's path mapper.
func (e *Engine) Mapper() PathMapper {
	return e.mapper
}

func (e *Engine) eventLogger(event string) *slog.Logger {
	return e.logger.With("event", event, "event_id", ksuid.New().String())
}

// AssetAdded uploads a freshly ingested attachment. Raster images are left
// to MetadataUpdated, which fires once the host has generated their sizes.
func (e *Engine) AssetAdded(ctx context.Context, id int64) bool {
	log := e.eventLogger("asset_added").With("attachment_id", id)

	a, err := e.library.Attachment(ctx, id)
	if err != nil {
		log.Error("lookup attachment", "error", err)
		return false
	}
	return e.addAttachment(ctx, log, a)
}

// AddAttachment is AssetAdded for an attachment the caller already holds.
func (e *Engine) AddAttachment(ctx context.Context, a *host.Attachment) bool {
	return e.addAttachment(ctx, e.eventLogger("asset_added").With("attachment_id", a.ID), a)
}

func (e *Engine) addAttachment(ctx context.Context, log *slog.Logger, a *host.Attachment) bool {
	if a.IsImage() && !a.IsSVG() {
		log.Debug("deferring image until its sizes are generated")
		return true
	}
	if _, err := e.upload(ctx, log, a.File); err != nil {
		return false
	}
	return true
}

// MetadataUpdated uploads the original and every size variant listed in md.
// md is returned unmodified.
func (e *Engine) MetadataUpdated(ctx context.Context, md *host.Metadata) *host.Metadata {
	log := e.eventLogger("metadata_updated")
	for _, path := range ExpandVariants(e.library.UploadDir().BaseDir, md) {
		_, _ = e.upload(ctx, log, path)
	}
	return md
}

// AssetDeleted removes every remote copy of an attachment when remote
// deletes are enabled. Each path is attempted independently.
func (e *Engine) AssetDeleted(ctx context.Context, id int64) {
	log := e.eventLogger("asset_deleted").With("attachment_id", id)
	if !e.cfg.DeleteRemoteOnLocalDelete {
		log.Debug("remote delete disabled")
		return
	}

	a, err := e.library.Attachment(ctx, id)
	if err != nil {
		log.Error("lookup attachment", "error", err)
		return
	}
	e.deleteAttachment(ctx, log, a)
}

// DeleteAttachment is AssetDeleted for an attachment the caller already holds.
func (e *Engine) DeleteAttachment(ctx context.Context, a *host.Attachment) {
	log := e.eventLogger("asset_deleted").With("attachment_id", a.ID)
	if !e.cfg.DeleteRemoteOnLocalDelete {
		log.Debug("remote delete disabled")
		return
	}
	e.deleteAttachment(ctx, log, a)
}

func (e *Engine) deleteAttachment(ctx context.Context, log *slog.Logger, a *host.Attachment) {
	paths := []string{a.File}
	if a.IsImage() {
		if expanded := ExpandVariants(e.library.UploadDir().BaseDir, a.Metadata); len(expanded) > 0 {
			paths = expanded
		}
	}

	for _, path := range paths {
		err := e.DeleteFile(ctx, path)
		switch {
		case IsNotFound(err):
			log.Debug("remote copy already gone", "path", path)
		case err != nil:
			log.Error("delete remote copy", "path", path, "error", err)
		}
	}
}

// UniqueFilename returns a name that does not collide with an object in the
// host's current upload subdirectory.
func (e *Engine) UniqueFilename(ctx context.Context, name string) (string, error) {
	return e.resolver.Resolve(ctx, name, e.library.UploadDir().Subdir)
}

// TestConnection runs the connection validator against the engine's store.
func (e *Engine) TestConnection(ctx context.Context) Result {
	return e.validator.Validate(ctx)
}

// UploadFile mirrors one local file. It reports uploaded=false without an
// error when the file is filtered out or not readable.
func (e *Engine) UploadFile(ctx context.Context, path string) (uploaded bool, err error) {
	return e.upload(ctx, e.logger, path)
}

func (e *Engine) upload(ctx context.Context, log *slog.Logger, path string) (bool, error) {
	if e.filter.ShouldSkip(path) {
		e.observer.RecordSkip(SkipFiltered)
		log.Debug("skipping filtered file", "path", path)
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		e.observer.RecordSkip(SkipUnreadable)
		log.Debug("skipping unreadable file", "path", path, "error", err)
		return false, nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		e.observer.RecordSkip(SkipUnreadable)
		log.Debug("skipping unreadable file", "path", path)
		return false, nil
	}

	key := e.mapper.Map(path)
	start := time.Now()
	err = e.put(ctx, f, path, key)
	e.observer.RecordUpload(time.Since(start), info.Size(), err)
	if err != nil {
		log.Debug("upload failed", "path", path, "key", key, "error", err)
		return false, err
	}

	if e.cfg.KeepOnlyInStorage {
		// release the handle before unlinking
		_ = f.Close()
		if err := os.Remove(path); err != nil {
			log.Debug("remove local copy failed", "path", path, "error", err)
			return true, &PathError{Op: "remove", Path: path, Key: key, Kind: ErrFilesystem, Err: err}
		}
	}
	log.Debug("uploaded", "path", path, "key", key)
	return true, nil
}

func (e *Engine) put(ctx context.Context, body io.Reader, path, key string) error {
	err := e.store.Write(ctx, key, body, storage.WriteOptions{Visibility: storage.VisibilityPublic})
	if err != nil {
		return &PathError{Op: "upload", Path: path, Key: key, Kind: ErrTransport, Err: err}
	}
	return nil
}

// DeleteFile removes the remote copy of one local path.
func (e *Engine) DeleteFile(ctx context.Context, path string) error {
	key := e.mapper.Map(path)
	start := time.Now()
	err := e.store.Delete(ctx, key)
	e.observer.RecordDelete(time.Since(start), err)
	if err != nil {
		return &PathError{Op: "delete", Path: path, Key: key, Kind: ErrTransport, Err: err}
	}
	return nil
}

// PushReport summarises a bulk push.
type PushReport struct {
	Uploaded int
	Skipped  int
	Failed   []error
}

// Push applies the upload procedure to each path in turn. fn, if non-nil, is
// called after every path.
func (e *Engine) Push(ctx context.Context, paths []string, fn func(path string, err error)) PushReport {
	var report PushReport
	log := e.eventLogger("push")
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			report.Failed = append(report.Failed, err)
			break
		}
		uploaded, err := e.upload(ctx, log, path)
		switch {
		case err != nil:
			report.Failed = append(report.Failed, err)
		case uploaded:
			report.Uploaded++
		default:
			report.Skipped++
		}
		if fn != nil {
			fn(path, err)
		}
	}
	return report
}

// IsNotFound reports whether err stems from a missing remote object.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
