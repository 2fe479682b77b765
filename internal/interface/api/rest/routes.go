package rest

const (
	// auth
	RouteAuth           = "/auth"
	RouteRegister       = RouteAuth + "/register"
	RouteLogin          = RouteAuth + "/login"
	RouteProfile        = RouteAuth + "/profile"
	RouteUpdateProfile  = RouteAuth + "/update-profile"
	RouteChangePassword = RouteAuth + "/change-password"

	// files
	RouteUpload         = "/upload"
	RouteFiles          = "/files"
	RouteDownload       = "/download/:id"
	RouteDelete         = "/delete/:id"
	RouteFileTags       = RouteFiles + "/:id/tags"
	RouteFileTagsDelete = RouteFileTags + "/delete"
	RouteFileTagsEdit   = RouteFileTags + "/edit"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
