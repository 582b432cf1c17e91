package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/farrelnajib/yaraku-assignment/pkg/domain"
	"github.com/farrelnajib/yaraku-assignment/pkg/export"
	"github.com/farrelnajib/yaraku-assignment/pkg/pubsub"
)

const exportTimestampLayout = "20060102T150405.000000000"

// ProcessExport runs one export job to completion:
// PENDING -> PROCESSING -> FINISHED, file on disk, notification
// published. Any error aborts the step and leaves the job in its last
// persisted state; there is no retry, so a mid-flight crash is visible
// as a job stuck in PROCESSING.
func (a *App) ProcessExport(ctx context.Context, jobID int64) error {
	job, ok, err := a.store.GetExportJob(jobID)
	if err != nil {
		return fmt.Errorf("load export job %d: %w", jobID, err)
	}
	if !ok {
		return fmt.Errorf("export job %d: %w", jobID, domain.ErrExportJobNotFound)
	}
	// The queue delivers at-least-once; a job that already finished is
	// acked without rework.
	if job.Status == domain.StatusFinished {
		slog.Info("export job already finished, skipping", "jobId", jobID)
		return nil
	}

	// Persist PROCESSING before any expensive work so status polls
	// reflect reality mid-flight.
	if err := a.store.SetExportJobStatus(jobID, domain.StatusProcessing); err != nil {
		return fmt.Errorf("mark export job %d processing: %w", jobID, err)
	}

	// Full-table snapshot: list-view search/sort filters do not carry
	// into the export, only type and fields survive into the job.
	books, err := a.store.AllBooks()
	if err != nil {
		return fmt.Errorf("load books for export job %d: %w", jobID, err)
	}

	data, err := export.Build(books, job.Fields, job.Type)
	if err != nil {
		return fmt.Errorf("build export job %d: %w", jobID, err)
	}

	filename := fmt.Sprintf("books-%s.%s", time.Now().UTC().Format(exportTimestampLayout), job.Type)
	name, err := a.files.Save(filename, data)
	if err != nil {
		return fmt.Errorf("save export job %d file: %w", jobID, err)
	}

	downloadURL := "/exports/" + name
	if err := a.store.FinishExportJob(jobID, downloadURL); err != nil {
		return fmt.Errorf("finish export job %d: %w", jobID, err)
	}

	finished, ok, err := a.store.GetExportJob(jobID)
	if err != nil || !ok {
		slog.Warn("export job finished but reload for notification failed", "jobId", jobID, "err", err)
		return nil
	}
	// Fire-and-forget: the FINISHED row is authoritative even when the
	// notification is lost.
	if err := a.publisher.Publish(ctx, pubsub.ExportTopic(jobID), finished); err != nil {
		slog.Warn("export notification failed", "jobId", jobID, "err", err)
	}
	return nil
}
