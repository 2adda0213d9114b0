package domain

// Viewer is the role under which a request reads the store. It is resolved
// once per request and threaded explicitly into every query that filters
// by visibility, instead of branching at each query site.
type Viewer struct {
	UserID string
	Staff  bool
}

// PublicViewer is the anonymous storefront view: active records only.
var PublicViewer = Viewer{}

func ViewerFor(u *User) Viewer {
	if u == nil {
		return PublicViewer
	}
	return Viewer{UserID: u.ID, Staff: u.Role == RoleStaff}
}
