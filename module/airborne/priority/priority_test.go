package priority

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juspay/airborne-cli/internal/api/airborne"
	cerrors "github.com/juspay/airborne-cli/util/common/errors"
)

func dims(pairs ...any) []airborne.Dimension {
	var out []airborne.Dimension
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, airborne.Dimension{Dimension: pairs[i].(string), Position: pairs[i+1].(int)})
	}
	return out
}

func TestSort(t *testing.T) {
	got := Sort(dims("os", 2, "city", 1, "app_version", 1, VariantIDs, 0))
	want := []string{VariantIDs, "app_version", "city", "os"}
	var names []string
	for _, d := range got {
		names = append(names, d.Dimension)
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
}

func TestMove(t *testing.T) {
	base := dims(VariantIDs, 0, "os", 1, "app_version", 2, "city", 3)

	tests := []struct {
		name        string
		dims        []airborne.Dimension
		dimension   string
		to          int
		opts        []PlanOption
		wantOrder   []string
		wantChanges []Change
		wantErr     error
	}{
		{
			name:      "move up",
			dims:      base,
			dimension: "city",
			to:        1,
			wantOrder: []string{VariantIDs, "city", "os", "app_version"},
			wantChanges: []Change{
				{Dimension: "city", From: 3, To: 1},
				{Dimension: "os", From: 1, To: 2},
				{Dimension: "app_version", From: 2, To: 3},
			},
		},
		{
			name:      "move down",
			dims:      base,
			dimension: "os",
			to:        2,
			wantOrder: []string{VariantIDs, "app_version", "os", "city"},
			wantChanges: []Change{
				{Dimension: "app_version", From: 2, To: 1},
				{Dimension: "os", From: 1, To: 2},
			},
		},
		{
			name:        "same index is a no-op",
			dims:        base,
			dimension:   "app_version",
			to:          2,
			wantOrder:   []string{VariantIDs, "os", "app_version", "city"},
			wantChanges: []Change{},
		},
		{
			name:      "gaps are compacted",
			dims:      dims(VariantIDs, 0, "os", 1, "app_version", 5),
			dimension: "app_version",
			to:        1,
			wantOrder: []string{VariantIDs, "app_version", "os"},
			wantChanges: []Change{
				{Dimension: "app_version", From: 5, To: 1},
				{Dimension: "os", From: 1, To: 2},
			},
		},
		{
			name:      "variantIds stays pinned",
			dims:      base,
			dimension: VariantIDs,
			to:        1,
			wantOrder: []string{"os", VariantIDs, "app_version", "city"},
			wantChanges: []Change{
				{Dimension: "os", From: 1, To: 0},
			},
		},
		{
			name:      "include unchanged",
			dims:      dims(VariantIDs, 0, "os", 1, "city", 2),
			dimension: "city",
			to:        1,
			opts:      []PlanOption{IncludeUnchanged()},
			wantOrder: []string{VariantIDs, "city", "os"},
			wantChanges: []Change{
				{Dimension: VariantIDs, From: 0, To: 0},
				{Dimension: "city", From: 2, To: 1},
				{Dimension: "os", From: 1, To: 2},
			},
		},
		{
			name:      "index zero is reserved",
			dims:      base,
			dimension: "city",
			to:        0,
			wantErr:   ErrReservedPosition,
		},
		{
			name:      "index out of range",
			dims:      base,
			dimension: "city",
			to:        4,
			wantErr:   cerrors.ErrInvalidArgument,
		},
		{
			name:      "unknown dimension",
			dims:      base,
			dimension: "country",
			to:        1,
			wantErr:   cerrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Move(tt.dims, tt.dimension, tt.to, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)

			var order []string
			for i, d := range plan.Order {
				order = append(order, d.Dimension)
				if d.Dimension != VariantIDs {
					assert.Equal(t, i, d.Position, "position of %s", d.Dimension)
				}
			}
			if diff := cmp.Diff(tt.wantOrder, order); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantChanges, plan.Changes); diff != "" {
				t.Errorf("changes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoveNeedsTwoDimensions(t *testing.T) {
	for _, in := range [][]airborne.Dimension{nil, dims("os", 1)} {
		_, err := Move(in, "os", 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, cerrors.ErrInvalidArgument), "got %v", err)
		assert.Contains(t, err.Error(), "at least two dimensions")
		assert.NotContains(t, err.Error(), "between 1 and 0")
	}
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	in := dims("city", 3, VariantIDs, 0, "os", 1, "app_version", 2)
	orig := append([]airborne.Dimension(nil), in...)
	_, err := Move(in, "city", 1)
	require.NoError(t, err)
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

type fakeUpdater struct {
	mu     sync.Mutex
	calls  []airborne.UpdateDimensionInput
	failOn string
}

func (f *fakeUpdater) UpdateDimension(_ context.Context, in airborne.UpdateDimensionInput) (*airborne.Dimension, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	if in.Dimension == f.failOn {
		return nil, errors.New("conflict")
	}
	return &airborne.Dimension{Dimension: in.Dimension, Position: in.Position}, nil
}

func TestApplySendsOneUpdatePerChangeInOrder(t *testing.T) {
	plan, err := Move(dims(VariantIDs, 0, "os", 1, "app_version", 2, "city", 3), "city", 1)
	require.NoError(t, err)

	u := &fakeUpdater{}
	var seen []string
	applied, err := Apply(context.Background(), u, plan, ApplyOptions{
		Tenant:   airborne.Tenant{Organisation: "acme", Application: "shop"},
		OnUpdate: func(c Change) { seen = append(seen, c.Dimension) },
	})
	require.NoError(t, err)

	want := []airborne.UpdateDimensionInput{
		{Tenant: airborne.Tenant{Organisation: "acme", Application: "shop"}, Dimension: "city", Position: 1, ChangeReason: DefaultChangeReason},
		{Tenant: airborne.Tenant{Organisation: "acme", Application: "shop"}, Dimension: "os", Position: 2, ChangeReason: DefaultChangeReason},
		{Tenant: airborne.Tenant{Organisation: "acme", Application: "shop"}, Dimension: "app_version", Position: 3, ChangeReason: DefaultChangeReason},
	}
	if diff := cmp.Diff(want, u.calls); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"city", "os", "app_version"}, seen)
	assert.Equal(t, plan.Changes, applied)
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	plan, err := Move(dims(VariantIDs, 0, "os", 1, "app_version", 2, "city", 3), "city", 1)
	require.NoError(t, err)

	u := &fakeUpdater{failOn: "os"}
	applied, err := Apply(context.Background(), u, plan, ApplyOptions{ChangeReason: "reprioritise"})
	require.Error(t, err)

	var aErr *ApplyError
	require.True(t, errors.As(err, &aErr))
	assert.Equal(t, "os", aErr.Dimension)
	assert.Equal(t, []Change{{Dimension: "city", From: 3, To: 1}}, applied)
	assert.Equal(t, applied, aErr.Applied)
	assert.EqualError(t, aErr.Err, "conflict")

	require.Len(t, u.calls, 2)
	assert.Equal(t, "reprioritise", u.calls[0].ChangeReason)
}

func TestApplyEmptyPlan(t *testing.T) {
	u := &fakeUpdater{}
	applied, err := Apply(context.Background(), u, &Plan{Changes: []Change{}}, ApplyOptions{})
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Empty(t, u.calls)
}

// TestReorderAgainstServer drives a full reorder through the HTTP client and
// checks the requests the server sees.
func TestReorderAgainstServer(t *testing.T) {
	type put struct {
		Path string
		Body map[string]any
	}
	var (
		mu   sync.Mutex
		puts []put
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"data":[
				{"dimension":"city","position":3,"change_reason":""},
				{"dimension":"variantIds","position":0,"change_reason":""},
				{"dimension":"os","position":1,"change_reason":""},
				{"dimension":"app_version","position":2,"change_reason":""}
			],"total_pages":1,"total_items":4}`)
			return
		}
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "acme", r.Header.Get(airborne.HeaderOrganisation))
		assert.Equal(t, "shop", r.Header.Get(airborne.HeaderApplication))
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		puts = append(puts, put{Path: r.URL.Path, Body: body})
		mu.Unlock()
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c, err := airborne.NewClient(srv.URL,
		airborne.WithToken("t"),
		airborne.WithOrganisation("acme"),
		airborne.WithApplication("shop"),
		airborne.WithRetryMax(0))
	require.NoError(t, err)

	list, err := c.ListDimensions(context.Background(), airborne.ListDimensionsInput{})
	require.NoError(t, err)
	plan, err := Move(list.Data, "city", 1)
	require.NoError(t, err)
	_, err = Apply(context.Background(), c, plan, ApplyOptions{})
	require.NoError(t, err)

	const base = "/api/organisations/applications/dimension/"
	want := []put{
		{Path: base + "city", Body: map[string]any{"position": float64(1), "change_reason": DefaultChangeReason}},
		{Path: base + "os", Body: map[string]any{"position": float64(2), "change_reason": DefaultChangeReason}},
		{Path: base + "app_version", Body: map[string]any{"position": float64(3), "change_reason": DefaultChangeReason}},
	}
	if diff := cmp.Diff(want, puts); diff != "" {
		t.Errorf("PUTs mismatch (-want +got):\n%s", diff)
	}
}
