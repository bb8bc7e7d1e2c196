package handler

const (
	// APIPath is the prefix of every JSON route.
	APIPath = "/api"

	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// ErrNilDepsFatalLogMsg is used if router or a required dependency is nil.
	ErrNilDepsFatalLogMsg = "router or handler dependencies are nil"
)
