package rest

import "github.com/supanut9/store-it/internal/infrastructure/backend"

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteFiles     = RouteApiV1 + "/files"
	RouteFile      = RouteFiles + "/:file_id"
	RouteFileName  = RouteFile + "/name"
	RouteFileUsers = RouteFile + "/users"

	RouteUsers = RouteApiV1 + "/users"
	RouteMe    = RouteUsers + "/me"

	// public
	RouteFileView = "/storage/buckets/:bucket_id/files/:file_id/view"
	RouteInitials = backend.RouteInitials
	RouteSignIn   = "/sign-in"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
