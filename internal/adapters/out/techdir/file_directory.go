// Package techdir provides a technician directory backed by a YAML file.
//
// The file lists the technicians of every dealership:
//
//	technicians:
//	  - id: 3f0a6d7e-54a4-4c1e-9b53-8f5b8d7e2c11
//	    dealershipId: 9b2c1f7a-0d4e-4a8b-a6f3-2e5d7c9b1a04
//	    skillLevel: 2
//
// Technicians are owned by another system; the file is its export. The
// directory reloads the file when it changes and keeps serving the previous
// content if a reload fails.
package techdir

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/technician"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// DebounceInterval is the delay after a file event before the file is re-read,
// so that the several events of an atomic replace cause one reload.
const DebounceInterval = 100 * time.Millisecond

var _ ports.TechnicianDirectory = (*FileDirectory)(nil)

type fileEntry struct {
	ID           string `yaml:"id"`
	DealershipID string `yaml:"dealershipId"`
	SkillLevel   int    `yaml:"skillLevel"`
}

type fileContent struct {
	Technicians []fileEntry `yaml:"technicians"`
}

// FileDirectory serves technicians loaded from a YAML file.
type FileDirectory struct {
	path   string
	logger *slog.Logger

	mu          sync.RWMutex
	technicians map[kernel.UUID]*technician.Technician
}

// NewFileDirectory loads path. A missing or invalid file is an error.
func NewFileDirectory(path string, logger *slog.Logger) (*FileDirectory, error) {
	d := &FileDirectory{
		path:   path,
		logger: logger.With("component", "technician_directory", "path", path),
	}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns the technician or errs.ObjectNotFoundError.
func (d *FileDirectory) Get(_ context.Context, id kernel.UUID) (*technician.Technician, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.technicians[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("technicianId", id.String())
	}
	return t, nil
}

// Len returns the number of loaded technicians.
func (d *FileDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.technicians)
}

// Dealerships returns the distinct dealerships of the loaded technicians in
// ascending order.
func (d *FileDirectory) Dealerships() []kernel.UUID {
	d.mu.RLock()
	seen := make(map[kernel.UUID]struct{}, len(d.technicians))
	for _, t := range d.technicians {
		seen[t.DealershipID()] = struct{}{}
	}
	d.mu.RUnlock()

	dealerships := make([]kernel.UUID, 0, len(seen))
	for id := range seen {
		dealerships = append(dealerships, id)
	}
	slices.SortFunc(dealerships, kernel.UUID.Compare)
	return dealerships
}

// Reload re-reads the file. On failure the current content is kept.
func (d *FileDirectory) Reload() error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read technicians file: %w", err)
	}

	technicians, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parse technicians file %s: %w", d.path, err)
	}

	d.mu.Lock()
	d.technicians = technicians
	d.mu.Unlock()
	return nil
}

// Watch reloads the file whenever it changes until ctx is done. The parent
// directory is watched so that replacing the file by rename is seen too.
func (d *FileDirectory) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(d.path)
	name := filepath.Base(d.path)
	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	d.logger.InfoContext(ctx, "watching technicians file")

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(DebounceInterval, func() {
				if reloadErr := d.Reload(); reloadErr != nil {
					d.logger.WarnContext(ctx, "technicians reload failed, keeping previous content", "error", reloadErr)
					return
				}
				d.logger.InfoContext(ctx, "technicians reloaded", "count", d.Len())
			})
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.WarnContext(ctx, "file watcher error", "error", watchErr)
		}
	}
}

// Parse decodes the YAML content of a technicians file. Every invalid entry is
// reported; duplicate ids are invalid.
func Parse(data []byte) (map[kernel.UUID]*technician.Technician, error) {
	var content fileContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("technicians file", err)
	}

	technicians := make(map[kernel.UUID]*technician.Technician, len(content.Technicians))
	var entryErrs []error
	for i, entry := range content.Technicians {
		t, err := entry.toDomain()
		if err != nil {
			entryErrs = append(entryErrs, fmt.Errorf("technician #%d: %w", i+1, err))
			continue
		}
		if _, dup := technicians[t.ID()]; dup {
			entryErrs = append(entryErrs, fmt.Errorf("technician #%d: %w", i+1,
				errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("duplicate id %s", t.ID()))))
			continue
		}
		technicians[t.ID()] = t
	}

	if err := errors.Join(entryErrs...); err != nil {
		return nil, err
	}
	return technicians, nil
}

func (e fileEntry) toDomain() (*technician.Technician, error) {
	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return nil, err
	}
	dealershipID, err := kernel.UUIDFromString(e.DealershipID)
	if err != nil {
		return nil, err
	}
	return technician.NewTechnician(id, dealershipID, technician.SkillLevel(e.SkillLevel))
}
