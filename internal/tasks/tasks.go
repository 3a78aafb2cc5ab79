package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/plx-dev/plx/internal/models"
	"github.com/plx-dev/plx/internal/shared"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchSongs Phase = iota
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchSongs:
		return "fetch_songs"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

// SongLister is the backend call the export engine depends on.
type SongLister interface {
	PlaylistSongs(ctx context.Context, playlistID, refreshToken string) ([]models.Track, error)
}

// ExportEngine runs bulk playlist exports against the backend.
type ExportEngine struct {
	client SongLister
	logger *log.Logger
}

// NewExportEngine creates an engine over the given backend client.
func NewExportEngine(client SongLister, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{client: client, logger: logger}
}

// sendProgress delivers an update without blocking; a slow consumer drops
// updates rather than stalling the export.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchingSongsUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching tracks: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
