// Package authz decides whether a request may perform a report action.
//
// Permissions only read the request. A permission that cannot be evaluated
// denies.
package authz

import "github.com/tdp-hub/tdp-report-services/models"

// Request is the subject of an authorization decision.
type Request struct {
	User *models.User

	// PathSTT is the STT named in the route, if the route has one.
	PathSTT *int

	// BodySTT is the STT submitted in the request body, if any.
	BodySTT *int
}

// RequestedSTT returns the STT the request targets: the path parameter,
// falling back to the submitted field.
func (r Request) RequestedSTT() *int {
	if r.PathSTT != nil {
		return r.PathSTT
	}
	return r.BodySTT
}

// Permission answers whether a request is allowed.
type Permission interface {
	HasPermission(req Request) bool
}

// ObjectPermission answers whether a request is allowed on a given object.
type ObjectPermission interface {
	HasObjectPermission(req Request, obj any) bool
}

// PermissionFunc adapts a plain function to Permission.
type PermissionFunc func(req Request) bool

func (f PermissionFunc) HasPermission(req Request) bool {
	return f(req)
}

// Any allows the request if at least one of perms does.
func Any(perms ...Permission) Permission {
	return PermissionFunc(func(req Request) bool {
		for _, p := range perms {
			if p.HasPermission(req) {
				return true
			}
		}
		return false
	})
}

// All allows the request only if every one of perms does.
func All(perms ...Permission) Permission {
	return PermissionFunc(func(req Request) bool {
		if len(perms) == 0 {
			return false
		}
		for _, p := range perms {
			if !p.HasPermission(req) {
				return false
			}
		}
		return true
	})
}

// IsInGroup reports whether user is a member of group.
func IsInGroup(user *models.User, group models.Group) bool {
	return user.InGroup(group)
}

// IsOwnSTT reports whether the caller is a Data Prepper acting on their own
// STT. A request that names no STT counts as targeting the caller's own.
func IsOwnSTT(req Request) bool {
	if !IsInGroup(req.User, models.GroupDataPrepper) {
		return false
	}
	if req.User.STT == nil {
		return false
	}
	requested := req.RequestedSTT()
	return requested == nil || *requested == *req.User.STT
}

// InGroup builds a permission satisfied by members of group.
func InGroup(group models.Group) Permission {
	return PermissionFunc(func(req Request) bool {
		return IsInGroup(req.User, group)
	})
}

var (
	IsOFAAdmin    = InGroup(models.GroupOFAAdmin)
	IsDataPrepper = InGroup(models.GroupDataPrepper)
	OwnSTT        = PermissionFunc(IsOwnSTT)

	// PathSTTSupplied holds when the route names an STT explicitly. STT ids
	// start at 1, so 0 names nothing.
	PathSTTSupplied = PermissionFunc(func(req Request) bool {
		return req.PathSTT != nil && *req.PathSTT != 0
	})

	// CanDownloadReport lets OFA Admins download for an explicitly named STT
	// and Data Preppers download for their own.
	CanDownloadReport = Any(All(IsOFAAdmin, PathSTTSupplied), OwnSTT)

	// CanUploadReport lets OFA Admins upload for any STT and Data Preppers
	// upload for their own.
	CanUploadReport = Any(IsOFAAdmin, OwnSTT)

	IsAdmin IsAdminPermission
	IsUser  IsUserPermission
)

// IsAdminPermission allows authenticated users carrying the admin flag.
type IsAdminPermission struct{}

func (IsAdminPermission) HasPermission(req Request) bool {
	return req.User.IsAuthenticated() && req.User.IsAdmin
}

func (p IsAdminPermission) HasObjectPermission(req Request, _ any) bool {
	return p.HasPermission(req)
}

// IsUserPermission allows a user to act on their own user record only.
type IsUserPermission struct{}

func (IsUserPermission) HasObjectPermission(req Request, obj any) bool {
	if !req.User.IsAuthenticated() {
		return false
	}
	switch target := obj.(type) {
	case *models.User:
		return target != nil && target.ID == req.User.ID
	case models.User:
		return target.ID == req.User.ID
	default:
		return false
	}
}
