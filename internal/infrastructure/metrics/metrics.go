package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels used by the file actions.
const (
	FilesUploaded      = "files_uploaded_total"
	FilesRenamed       = "files_renamed_total"
	FilesShared        = "files_shared_total"
	FilesDeleted       = "files_deleted_total"
	UploadRollbacks    = "upload_rollbacks_total"
	RollbackFailures   = "upload_rollback_failures_total"
	OrphanedObjects    = "orphaned_objects_total"
	RevalidateFailures = "revalidate_failures_total"
)

func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

// NewCounterWith registers the counter on reg; tests pass a fresh registry.
func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storeit",
			Name:      "general_counters",
		},
		[]string{"result"})
}
