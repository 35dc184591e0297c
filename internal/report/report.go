// Package report persists point-in-time statistics snapshots of the recipe
// catalog. Only the summary is stored, never the recipes themselves.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/catalog"
)

type Trigger string

const (
	TriggerPeriodic Trigger = "periodic"
	TriggerManual   Trigger = "manual"
	TriggerShutdown Trigger = "shutdown"
)

type Report struct {
	ID        string           `json:"id" yaml:"id"`
	Trigger   Trigger          `json:"trigger" yaml:"trigger"`
	Snapshot  catalog.Snapshot `json:"snapshot" yaml:"snapshot"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
}

// Snapshotter is satisfied by *catalog.Catalog.
type Snapshotter interface {
	Snapshot(ctx context.Context) catalog.Snapshot
}

// Take builds a new report from the current catalog state.
func Take(ctx context.Context, src Snapshotter, trigger Trigger) Report {
	snap := src.Snapshot(ctx)
	return Report{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		Snapshot:  snap,
		CreatedAt: snap.TakenAt,
	}
}
