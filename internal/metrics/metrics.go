package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	reactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_post_reactions_total",
		Help: "Like and unlike attempts on posts by outcome.",
	}, []string{"reaction", "outcome"})

	postViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scribe_post_views_total",
		Help: "Post detail fetches that incremented a read counter.",
	})

	commentSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_comment_submissions_total",
		Help: "Comment submissions by outcome.",
	}, []string{"outcome"})

	moderationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_comment_moderation_total",
		Help: "Comment moderation actions by outcome.",
	}, []string{"action", "outcome"})
)

// ObserveReaction counts a like/unlike attempt
func ObserveReaction(reaction, outcome string) {
	reactionsTotal.WithLabelValues(reaction, outcome).Inc()
}

// ObservePostView counts a recorded post view
func ObservePostView() {
	postViewsTotal.Inc()
}

// ObserveCommentSubmission counts a comment submission attempt
func ObserveCommentSubmission(outcome string) {
	commentSubmissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveModeration counts an approve/block action
func ObserveModeration(action, outcome string) {
	moderationTotal.WithLabelValues(action, outcome).Inc()
}

// Handler exposes the default registry for scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
