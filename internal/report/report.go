// Package report archives finished analysis reports to blob storage so they
// can be retrieved after the originating request has completed.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/pkg/storage"
)

// System defines the archive contract for finished reports.
type System interface {
	// Archive persists the report under the execution's id. Returns the
	// storage key on success.
	Archive(ctx context.Context, executionID uuid.UUID, report any) (string, error)
}

type blobArchive struct {
	storage storage.System
	logger  *slog.Logger
}

// New creates a report archive backed by blob storage.
func New(storage storage.System, logger *slog.Logger) System {
	return &blobArchive{
		storage: storage,
		logger:  logger.With("system", "reports"),
	}
}

func (b *blobArchive) Archive(ctx context.Context, executionID uuid.UUID, report any) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	key := Key(executionID)
	if err := b.storage.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("archive report: %w", err)
	}

	b.logger.Info("report archived", "execution_id", executionID, "key", key, "bytes", len(data))
	return key, nil
}

// Key returns the storage key for an execution's report.
func Key(executionID uuid.UUID) string {
	return fmt.Sprintf("executions/%s.json", executionID)
}

type nop struct{}

// NewNop creates an archive that discards reports. Used when blob storage is
// not configured.
func NewNop() System {
	return nop{}
}

func (nop) Archive(context.Context, uuid.UUID, any) (string, error) {
	return "", nil
}
