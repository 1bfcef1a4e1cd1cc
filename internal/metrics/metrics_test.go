package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	created := testutil.ToFloat64(BoxesCreated)
	commission := testutil.ToFloat64(CommissionCollected)
	rebates := testutil.ToFloat64(PaidOut.WithLabelValues(string(domain.TierRebate)))
	duds := testutil.ToFloat64(BoxesRevealed.WithLabelValues(string(domain.TierDud), "true"))
	treasury := testutil.ToFloat64(Withdrawn.WithLabelValues(SourceTreasury))
	pending := testutil.ToFloat64(RandomnessNotReady)

	require.NoError(t, bus.Publish(ctx, event.New(event.BoxCreated, domain.BoxCreatedPayload{Price: 1_000, Commission: 10})))
	require.NoError(t, bus.Publish(ctx, event.New(event.BoxRevealed, domain.BoxRevealedPayload{Tier: domain.TierDud, Expired: true})))
	require.NoError(t, bus.Publish(ctx, event.New(event.BoxSettled, domain.BoxSettledPayload{Tier: domain.TierRebate, Amount: 500})))
	require.NoError(t, bus.Publish(ctx, event.New(event.TreasuryWithdrawn, domain.WithdrawalPayload{Amount: 7})))
	require.NoError(t, bus.Publish(ctx, event.New(event.RandomnessPending, domain.RandomnessPendingPayload{})))

	assert.Equal(t, created+1, testutil.ToFloat64(BoxesCreated))
	assert.Equal(t, commission+10, testutil.ToFloat64(CommissionCollected))
	assert.Equal(t, rebates+500, testutil.ToFloat64(PaidOut.WithLabelValues(string(domain.TierRebate))))
	assert.Equal(t, duds+1, testutil.ToFloat64(BoxesRevealed.WithLabelValues(string(domain.TierDud), "true")))
	assert.Equal(t, treasury+7, testutil.ToFloat64(Withdrawn.WithLabelValues(SourceTreasury)))
	assert.Equal(t, pending+1, testutil.ToFloat64(RandomnessNotReady))
}

func TestEventMetricsCollector_ReplayedPayload(t *testing.T) {
	ctx := context.Background()
	c := NewEventMetricsCollector()

	jackpots := testutil.ToFloat64(PaidOut.WithLabelValues(string(domain.TierJackpot)))

	replayed := map[string]any{"tier": string(domain.TierJackpot), "amount": 250}
	require.NoError(t, c.HandleEvent(ctx, event.New(event.BoxRefunded, replayed)))
	require.NoError(t, c.HandleEvent(ctx, event.New(event.BoxSettled, "not a payload")), "bad payloads are logged, not returned")

	assert.Equal(t, jackpots+250, testutil.ToFloat64(PaidOut.WithLabelValues(string(domain.TierJackpot))))
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/projects/{projectID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/projects/{projectID}", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
