package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tdp-hub/tdp-report-services/models"
)

func intPtr(i int) *int { return &i }

func newUser(stt *int, groups ...models.Group) *models.User {
	return &models.User{ID: uuid.New(), Username: "user@example.com", STT: stt, Groups: groups}
}

func TestIsInGroup(t *testing.T) {
	prepper := newUser(intPtr(3), models.GroupDataPrepper)

	assert.True(t, IsInGroup(prepper, models.GroupDataPrepper))
	assert.False(t, IsInGroup(prepper, models.GroupOFAAdmin))
	assert.False(t, IsInGroup(&models.AnonymousUser, models.GroupDataPrepper))
	assert.False(t, IsInGroup(nil, models.GroupOFAAdmin))
}

func TestIsOwnSTT(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want bool
	}{
		{"prepper requesting own stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), PathSTT: intPtr(3)}, true},
		{"prepper requesting other stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), PathSTT: intPtr(4)}, false},
		{"prepper requesting no stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper)}, true},
		{"prepper submitting own stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), BodySTT: intPtr(3)}, true},
		{"prepper submitting other stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), BodySTT: intPtr(4)}, false},
		{"path wins over body", Request{User: newUser(intPtr(3), models.GroupDataPrepper), PathSTT: intPtr(3), BodySTT: intPtr(4)}, true},
		{"prepper without stt", Request{User: newUser(nil, models.GroupDataPrepper)}, false},
		{"prepper without stt requesting one", Request{User: newUser(nil, models.GroupDataPrepper), PathSTT: intPtr(3)}, false},
		{"admin is not own stt", Request{User: newUser(intPtr(3), models.GroupOFAAdmin), PathSTT: intPtr(3)}, false},
		{"anonymous", Request{User: &models.AnonymousUser}, false},
		{"nil user", Request{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOwnSTT(tt.req))
		})
	}
}

func TestCanDownloadReport(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want bool
	}{
		{"admin with path stt", Request{User: newUser(nil, models.GroupOFAAdmin), PathSTT: intPtr(5)}, true},
		{"admin without path stt", Request{User: newUser(nil, models.GroupOFAAdmin)}, false},
		{"admin with zero path stt", Request{User: newUser(nil, models.GroupOFAAdmin), PathSTT: intPtr(0)}, false},
		{"admin with only body stt", Request{User: newUser(nil, models.GroupOFAAdmin), BodySTT: intPtr(5)}, false},
		{"admin and prepper without path stt", Request{User: newUser(intPtr(3), models.GroupOFAAdmin, models.GroupDataPrepper)}, true},
		{"prepper own stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), PathSTT: intPtr(3)}, true},
		{"prepper other stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), PathSTT: intPtr(4)}, false},
		{"no group", Request{User: newUser(intPtr(3)), PathSTT: intPtr(3)}, false},
		{"anonymous", Request{User: &models.AnonymousUser, PathSTT: intPtr(3)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDownloadReport.HasPermission(tt.req))
		})
	}
}

func TestCanUploadReport(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want bool
	}{
		{"admin without stt", Request{User: newUser(nil, models.GroupOFAAdmin)}, true},
		{"admin any stt", Request{User: newUser(nil, models.GroupOFAAdmin), BodySTT: intPtr(9)}, true},
		{"prepper own stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), BodySTT: intPtr(3)}, true},
		{"prepper no stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper)}, true},
		{"prepper other stt", Request{User: newUser(intPtr(3), models.GroupDataPrepper), BodySTT: intPtr(4)}, false},
		{"no group", Request{User: newUser(intPtr(3))}, false},
		{"anonymous", Request{User: &models.AnonymousUser}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUploadReport.HasPermission(tt.req))
		})
	}
}

func TestIsAdmin(t *testing.T) {
	admin := newUser(nil)
	admin.IsAdmin = true

	assert.True(t, IsAdmin.HasPermission(Request{User: admin}))
	assert.True(t, IsAdmin.HasObjectPermission(Request{User: admin}, nil))
	assert.False(t, IsAdmin.HasPermission(Request{User: newUser(nil, models.GroupOFAAdmin)}))

	// An unresolved user never passes, whatever its flag says.
	assert.False(t, IsAdmin.HasPermission(Request{User: &models.User{IsAdmin: true}}))
}

func TestIsUser(t *testing.T) {
	me := newUser(intPtr(3))
	other := newUser(intPtr(3))

	assert.True(t, IsUser.HasObjectPermission(Request{User: me}, me))
	assert.True(t, IsUser.HasObjectPermission(Request{User: me}, *me))
	assert.False(t, IsUser.HasObjectPermission(Request{User: me}, other))
	assert.False(t, IsUser.HasObjectPermission(Request{User: me}, "not a user"))
	assert.False(t, IsUser.HasObjectPermission(Request{User: &models.AnonymousUser}, &models.AnonymousUser))
}

func TestGroupPermissions(t *testing.T) {
	prepper := Request{User: newUser(intPtr(3), models.GroupDataPrepper)}
	admin := Request{User: newUser(nil, models.GroupOFAAdmin)}

	assert.True(t, IsDataPrepper.HasPermission(prepper))
	assert.False(t, IsDataPrepper.HasPermission(admin))
	assert.True(t, IsOFAAdmin.HasPermission(admin))
	assert.False(t, IsOFAAdmin.HasPermission(prepper))
}

func TestAllWithoutPermissionsDenies(t *testing.T) {
	assert.False(t, All().HasPermission(Request{User: newUser(nil, models.GroupOFAAdmin)}))
	assert.False(t, Any().HasPermission(Request{User: newUser(nil, models.GroupOFAAdmin)}))
}
