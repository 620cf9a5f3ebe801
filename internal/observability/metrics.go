package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clipstream_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeToggles counts like toggle outcomes by target kind and action.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_like_toggles_total",
		Help: "Total number of like toggles by target kind and resulting action",
	}, []string{"target", "action"})

	// TokenRefreshes counts refresh attempts by outcome.
	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_token_refresh_total",
		Help: "Total number of refresh token rotations by outcome",
	}, []string{"outcome"})

	// FeedRequests counts feed queries by feed name.
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_feed_requests_total",
		Help: "Total number of feed page requests by feed",
	}, []string{"feed"})

	// ObjectStoreOperations counts object store calls by operation and outcome.
	ObjectStoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_object_store_operations_total",
		Help: "Total number of object store operations by type and outcome",
	}, []string{"operation", "outcome"})

	// VideoViews counts recorded video views.
	VideoViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipstream_video_views_total",
		Help: "Total number of recorded video views",
	})
)

// RecordLikeToggle increments the like toggle counter.
func RecordLikeToggle(target string, liked bool) {
	action := "unliked"
	if liked {
		action = "liked"
	}
	LikeToggles.WithLabelValues(target, action).Inc()
}

// RecordTokenRefresh increments the refresh counter for the outcome.
func RecordTokenRefresh(outcome string) {
	TokenRefreshes.WithLabelValues(outcome).Inc()
}

// RecordFeedRequest increments the feed request counter.
func RecordFeedRequest(feed string) {
	FeedRequests.WithLabelValues(feed).Inc()
}

// RecordObjectStoreOperation increments the object store counter.
func RecordObjectStoreOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ObjectStoreOperations.WithLabelValues(operation, outcome).Inc()
}
