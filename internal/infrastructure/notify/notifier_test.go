package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/infrastructure/notify"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/logger"
)

type recorder struct {
	submitted []string
	changed   []string
}

func (r *recorder) QuoteSubmitted(_ context.Context, q entity.QuoteRequest) {
	r.submitted = append(r.submitted, q.ID)
}

func (r *recorder) StatusChanged(_ context.Context, q entity.QuoteRequest, from entity.QuoteStatus) {
	r.changed = append(r.changed, string(from)+"->"+string(q.Status))
}

func TestLogNotifier_StatusChanged(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(logger.NewWithWriter(logger.Config{Level: "info"}, &buf))

	n.StatusChanged(context.Background(), entity.QuoteRequest{ID: "q-1", Status: entity.QuoteStatusContacted}, entity.QuoteStatusNew)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "notify", line["component"])
	assert.Equal(t, "quote_status_changed", line["event"])
	assert.Equal(t, "NEW", line["from"])
	assert.Equal(t, "CONTACTED", line["to"])
}

func TestLogNotifier_NoEscribeEmail(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(logger.NewWithWriter(logger.Config{Level: "info"}, &buf))

	n.QuoteSubmitted(context.Background(), entity.QuoteRequest{ID: "q-1", ContactEmail: "ana@acme.io", LeadScore: 80})

	assert.NotContains(t, buf.String(), "ana@acme.io")
	assert.Contains(t, buf.String(), `"lead_score":80`)
}

func TestMulti_RepartoEnOrden(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := notify.Multi{a, b}

	m.QuoteSubmitted(context.Background(), entity.QuoteRequest{ID: "q-1"})
	m.StatusChanged(context.Background(), entity.QuoteRequest{Status: entity.QuoteStatusDeclined}, entity.QuoteStatusProposal)

	for _, r := range []*recorder{a, b} {
		assert.Equal(t, []string{"q-1"}, r.submitted)
		assert.Equal(t, []string{"PROPOSAL->DECLINED"}, r.changed)
	}
}
