// Package priority reorders targeting dimensions. A dimension's position is
// its priority: lower positions win when release targeting overlaps.
package priority

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/module/airborne/engine"
	cerrors "github.com/juspay/airborne-cli/util/common/errors"
)

const (
	// VariantIDs is the server-managed experiment dimension. It is pinned to
	// position 0 whatever the order.
	VariantIDs = "variantIds"

	// DefaultChangeReason is recorded on every position update.
	DefaultChangeReason = "Updated dimension priority order"
)

// ErrReservedPosition is returned when a dimension is moved to index 0.
var ErrReservedPosition = errors.New("position 0 is reserved")

// Change is one position update.
type Change struct {
	Dimension string `json:"dimension"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

// Plan is the outcome of a move: the new order with recomputed positions and
// the updates needed to get there.
type Plan struct {
	Order   []airborne.Dimension `json:"order"`
	Changes []Change             `json:"changes"`
}

// Sort returns a copy of dims ordered by position, ties broken by name.
func Sort(dims []airborne.Dimension) []airborne.Dimension {
	out := make([]airborne.Dimension, len(dims))
	copy(out, dims)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Dimension < out[j].Dimension
	})
	return out
}

// PlanOption tunes Move.
type PlanOption func(*planOptions)

type planOptions struct {
	includeUnchanged bool
}

// IncludeUnchanged plans an update for every dimension, not only those whose
// position changed.
func IncludeUnchanged() PlanOption {
	return func(o *planOptions) { o.includeUnchanged = true }
}

// Move plans moving the dimension called name to index to in the sorted
// order. Index 0 is reserved.
func Move(dims []airborne.Dimension, name string, to int, opts ...PlanOption) (*Plan, error) {
	var o planOptions
	for _, opt := range opts {
		opt(&o)
	}

	if to == 0 {
		return nil, ErrReservedPosition
	}
	sorted := Sort(dims)
	if len(sorted) < 2 {
		return nil, cerrors.NewValidationError("to", fmt.Sprintf("at least two dimensions are needed to reorder, found %d", len(sorted)))
	}
	if to < 0 || to >= len(sorted) {
		return nil, cerrors.NewValidationError("to", fmt.Sprintf("must be between 1 and %d", len(sorted)-1))
	}

	from := -1
	for i, d := range sorted {
		if d.Dimension == name {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, cerrors.Wrap(cerrors.ErrNotFound, fmt.Sprintf("dimension %q", name))
	}

	moved := arrayMove(sorted, from, to)
	plan := &Plan{Order: moved, Changes: []Change{}}
	for i := range moved {
		pos := i
		if moved[i].Dimension == VariantIDs {
			pos = 0
		}
		if pos != moved[i].Position || o.includeUnchanged {
			plan.Changes = append(plan.Changes, Change{
				Dimension: moved[i].Dimension,
				From:      moved[i].Position,
				To:        pos,
			})
		}
		moved[i].Position = pos
	}
	return plan, nil
}

func arrayMove(items []airborne.Dimension, from, to int) []airborne.Dimension {
	out := make([]airborne.Dimension, 0, len(items))
	item := items[from]
	for i, d := range items {
		if i != from {
			out = append(out, d)
		}
	}
	out = append(out[:to], append([]airborne.Dimension{item}, out[to:]...)...)
	return out
}

// Updater sends one dimension update. *airborne.Client satisfies it.
type Updater interface {
	UpdateDimension(ctx context.Context, in airborne.UpdateDimensionInput) (*airborne.Dimension, error)
}

// ApplyOptions tunes Apply.
type ApplyOptions struct {
	Tenant       airborne.Tenant
	ChangeReason string
	// OnUpdate is called after each successful update.
	OnUpdate func(Change)
}

// ApplyError reports the update that failed and those already applied. The
// server state is partially reordered when Applied is not empty.
type ApplyError struct {
	Dimension string
	Applied   []Change
	Err       error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("update dimension %s: %v (%d of the planned updates were applied)", e.Dimension, e.Err, len(e.Applied))
}

func (e *ApplyError) Unwrap() error { return e.Err }

// Apply sends one update per planned change, in order, stopping at the first
// failure.
func Apply(ctx context.Context, u Updater, plan *Plan, opts ApplyOptions) ([]Change, error) {
	if plan == nil || len(plan.Changes) == 0 {
		return nil, nil
	}
	reason := opts.ChangeReason
	if reason == "" {
		reason = DefaultChangeReason
	}

	rec := &recorder{onUpdate: opts.OnUpdate}
	jobs := make([]engine.Job, 0, len(plan.Changes))
	for _, c := range plan.Changes {
		jobs = append(jobs, &updateJob{
			updater: u,
			change:  c,
			input: airborne.UpdateDimensionInput{
				Tenant:       opts.Tenant,
				Dimension:    c.Dimension,
				Position:     c.To,
				ChangeReason: reason,
			},
			rec: rec,
		})
	}

	if err := engine.NewEngine(1, jobs, engine.WithFailFast()).Execute(ctx); err != nil {
		if rec.failed == "" {
			return rec.applied, err
		}
		return rec.applied, &ApplyError{Dimension: rec.failed, Applied: rec.applied, Err: rec.err}
	}
	return rec.applied, nil
}

type recorder struct {
	mu       sync.Mutex
	applied  []Change
	failed   string
	err      error
	onUpdate func(Change)
}

type updateJob struct {
	updater Updater
	change  Change
	input   airborne.UpdateDimensionInput
	rec     *recorder
}

func (j *updateJob) Info() string { return j.change.Dimension }

func (j *updateJob) Pre(ctx context.Context) error {
	return ctx.Err()
}

func (j *updateJob) Run(ctx context.Context) error {
	if _, err := j.updater.UpdateDimension(ctx, j.input); err != nil {
		j.rec.mu.Lock()
		if j.rec.failed == "" {
			j.rec.failed = j.change.Dimension
			j.rec.err = err
		}
		j.rec.mu.Unlock()
		return err
	}
	return nil
}

func (j *updateJob) Post(context.Context) error {
	j.rec.mu.Lock()
	j.rec.applied = append(j.rec.applied, j.change)
	j.rec.mu.Unlock()
	if j.rec.onUpdate != nil {
		j.rec.onUpdate(j.change)
	}
	return nil
}
