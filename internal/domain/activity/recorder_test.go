package activity_test

import (
	"testing"
	"time"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/activity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_EntradasConRelojInyectado(t *testing.T) {
	at := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	r := activity.NewRecorder(
		activity.WithClock(func() time.Time { return at }),
		activity.WithIDGenerator(func() string { return "fixed" }),
	)

	e := r.StatusChange("q-1", entity.QuoteStatusNew, entity.QuoteStatusContacted)
	assert.Equal(t, entity.ActivityEntry{
		ID:        "fixed",
		QuoteID:   "q-1",
		Action:    entity.ActivityStatusChange,
		Metadata:  map[string]string{"from": "NEW", "to": "CONTACTED"},
		CreatedAt: at,
	}, e)

	n := r.NotesUpdated("q-1")
	assert.Equal(t, entity.ActivityNotesUpdated, n.Action)
	assert.NotNil(t, n.Metadata)
	assert.Empty(t, n.Metadata)

	est := r.EstimateUpdated("q-1", "", "1000.00")
	assert.Equal(t, map[string]string{"from": "", "to": "1000.00"}, est.Metadata)
}

func TestRecorder_PorDefectoUsaUUIDyUTC(t *testing.T) {
	r := activity.NewRecorder()
	a := r.NotesUpdated("q")
	b := r.NotesUpdated("q")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
}

func TestAppend_NoComparteBackingArray(t *testing.T) {
	log := make([]entity.ActivityEntry, 1, 8)
	log[0] = entity.ActivityEntry{ID: "a"}

	x := activity.Append(log, entity.ActivityEntry{ID: "x"})
	y := activity.Append(log, entity.ActivityEntry{ID: "y"})

	require.Len(t, x, 2)
	require.Len(t, y, 2)
	assert.Equal(t, "x", x[1].ID)
	assert.Equal(t, "y", y[1].ID)
	assert.Len(t, log, 1)
}
