// Package access holds the permission rules of the API as pure functions.
// Handlers receive a Policy and never consult shared permission state.
package access

// Principal is the caller of a request as seen by permission checks.
// A nil *Principal is an anonymous caller.
type Principal struct {
	UserID  int64
	IsAdmin bool
}

// IsAuthenticated reports whether the caller is signed in
func IsAuthenticated(p *Principal) bool {
	return p != nil && p.UserID > 0
}

// IsAdmin reports whether the caller is a staff user
func IsAdmin(p *Principal) bool {
	return IsAuthenticated(p) && p.IsAdmin
}

// IsAuthorOrAdmin reports whether the caller may modify a resource written by authorID
func IsAuthorOrAdmin(p *Principal, authorID int64) bool {
	if !IsAuthenticated(p) {
		return false
	}
	return p.IsAdmin || p.UserID == authorID
}

// Policy bundles the checks injected into the HTTP facade
type Policy struct {
	CanWrite    func(p *Principal) bool
	CanModerate func(p *Principal) bool
	CanModify   func(p *Principal, authorID int64) bool
}

// DefaultPolicy returns the standard rules: signed-in users write, staff moderate,
// authors or staff modify posts.
func DefaultPolicy() Policy {
	return Policy{
		CanWrite:    IsAuthenticated,
		CanModerate: IsAdmin,
		CanModify:   IsAuthorOrAdmin,
	}
}
