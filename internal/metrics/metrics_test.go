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

	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/event"
)

func TestEventMetricsCollector_ScoreAndRank(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	points := testutil.ToFloat64(PointsApplied)
	ranks := testutil.ToFloat64(RankChanges)
	published := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ScoreChanged)))

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewScoreChangedEvent("alice", 3, 40, 140)))
	require.NoError(t, bus.Publish(ctx, event.NewRankChangedEvent("alice", 3, 0, 140)))

	assert.Equal(t, points+40, testutil.ToFloat64(PointsApplied))
	assert.Equal(t, ranks+1, testutil.ToFloat64(RankChanges))
	assert.Equal(t, published+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ScoreChanged))))
}

func TestEventMetricsCollector_Settlement(t *testing.T) {
	c := NewEventMetricsCollector()
	forced := testutil.ToFloat64(SettlementsTotal.WithLabelValues(ResultForced))
	payouts := testutil.ToFloat64(PayoutsTotal)
	amount := testutil.ToFloat64(PayoutAmountTotal)

	dist := domain.Distribution{
		Period:     4,
		PoolBefore: 1000,
		Total:      99,
		Forced:     true,
		Payouts: []domain.Payout{
			{Player: "alice", Amount: 66},
			{Player: "bob", Amount: 33},
			{Player: "carol", Amount: 0},
		},
	}
	require.NoError(t, c.HandleEvent(context.Background(), event.NewPeriodSettledEvent(dist)))

	assert.Equal(t, forced+1, testutil.ToFloat64(SettlementsTotal.WithLabelValues(ResultForced)))
	assert.Equal(t, payouts+2, testutil.ToFloat64(PayoutsTotal), "zero payouts are not counted")
	assert.Equal(t, amount+99, testutil.ToFloat64(PayoutAmountTotal))
	assert.Equal(t, float64(901), testutil.ToFloat64(RewardPoolBalance))
}

func TestEventMetricsCollector_SerializedPayload(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(PoolDeposits.WithLabelValues(domain.DepositSourceFee))

	// payloads read back from the dead-letter file arrive as generic maps
	evt := event.Event{
		Type: event.PoolDeposit,
		Payload: map[string]interface{}{
			"source":  domain.DepositSourceFee,
			"amount":  12,
			"balance": 512,
		},
	}
	require.NoError(t, c.HandleEvent(context.Background(), evt))

	assert.Equal(t, before+12, testutil.ToFloat64(PoolDeposits.WithLabelValues(domain.DepositSourceFee)))
	assert.Equal(t, float64(512), testutil.ToFloat64(RewardPoolBalance))
}

func TestEventMetricsCollector_RewardsAndRollover(t *testing.T) {
	c := NewEventMetricsCollector()
	quest := testutil.ToFloat64(RewardsPaid.WithLabelValues(KindQuest))
	battle := testutil.ToFloat64(RewardsPaid.WithLabelValues(KindBattle))
	ctx := context.Background()

	require.NoError(t, c.HandleEvent(ctx, event.NewRewardEvent(event.QuestCompleted, domain.RewardPayload{Reward: 120})))
	require.NoError(t, c.HandleEvent(ctx, event.NewRewardEvent(event.BattleCompleted, domain.RewardPayload{Reward: 80})))
	require.NoError(t, c.HandleEvent(ctx, event.NewPeriodRolledOverEvent(6, 7)))

	assert.Equal(t, quest+120, testutil.ToFloat64(RewardsPaid.WithLabelValues(KindQuest)))
	assert.Equal(t, battle+80, testutil.ToFloat64(RewardsPaid.WithLabelValues(KindBattle)))
	assert.Equal(t, float64(7), testutil.ToFloat64(CurrentPeriod))
}

func TestEventMetricsCollector_UndecodablePayloadIsIgnored(t *testing.T) {
	c := NewEventMetricsCollector()
	evt := event.Event{Type: event.ScoreChanged, Payload: "not a payload"}
	assert.NoError(t, c.HandleEvent(context.Background(), evt))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/players/{player}/score", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/players/{player}/score", "418")
	before := testutil.ToFloat64(counter)

	for _, player := range []string{"alice", "bob"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players/"+player+"/score", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}
