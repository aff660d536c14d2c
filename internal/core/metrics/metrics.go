package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"e-course-api/internal/domain"
)

// 业务指标
var (
	EnrollmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecourse_enrollments_total",
			Help: "Enroll / unenroll attempts by result",
		},
		[]string{"action", "result"},
	)

	ProgressUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecourse_progress_updates_total",
			Help: "Progress mutations by kind and result",
		},
		[]string{"kind", "result"},
	)

	CoursesCompletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ecourse_courses_completed_total",
			Help: "Page updates that moved a progress record to completed",
		},
	)
)

func init() {
	prometheus.MustRegister(EnrollmentsTotal, ProgressUpdatesTotal, CoursesCompletedTotal)
}

var resultLabels = []struct {
	kind  error
	label string
}{
	{domain.ErrValidation, "invalid"},
	{domain.ErrNotFound, "not_found"},
	{domain.ErrRole, "role"},
	{domain.ErrForbidden, "forbidden"},
	{domain.ErrAlreadyEnrolled, "already_enrolled"},
	{domain.ErrNotEnrolled, "not_enrolled"},
}

// Result 把 error 归成固定的几个 label，避免基数失控
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range resultLabels {
		if errors.Is(err, r.kind) {
			return r.label
		}
	}
	return "error"
}
