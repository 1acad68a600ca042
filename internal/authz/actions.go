package authz

// Action names an operation exposed by the API.
type Action string

const (
	ActionListReportYears    Action = "reports.years"
	ActionCreateReportFile   Action = "reports.create"
	ActionDownloadReportFile Action = "reports.download"
	ActionListUsers          Action = "users.list"
	ActionListRoles          Action = "roles.list"
)

// ActionTable maps each action to the permission guarding it.
var ActionTable = map[Action]Permission{
	ActionListReportYears:    CanDownloadReport,
	ActionCreateReportFile:   CanUploadReport,
	ActionDownloadReportFile: CanDownloadReport,
	ActionListUsers:          IsOFAAdmin,
	ActionListRoles:          IsAdmin,
}

// Authorizer answers one question per API action.
type Authorizer interface {
	CanListReportYears(req Request) bool
	CanCreateReportFile(req Request) bool
	CanDownloadReportFile(req Request) bool
	CanListUsers(req Request) bool
	CanListRoles(req Request) bool
}

// TableAuthorizer implements Authorizer on top of an action table. Actions
// missing from the table are denied.
type TableAuthorizer struct {
	Table map[Action]Permission
}

// DefaultAuthorizer checks actions against ActionTable.
var DefaultAuthorizer Authorizer = TableAuthorizer{Table: ActionTable}

func (a TableAuthorizer) check(action Action, req Request) bool {
	perm, ok := a.Table[action]
	return ok && perm.HasPermission(req)
}

func (a TableAuthorizer) CanListReportYears(req Request) bool {
	return a.check(ActionListReportYears, req)
}

func (a TableAuthorizer) CanCreateReportFile(req Request) bool {
	return a.check(ActionCreateReportFile, req)
}

func (a TableAuthorizer) CanDownloadReportFile(req Request) bool {
	return a.check(ActionDownloadReportFile, req)
}

func (a TableAuthorizer) CanListUsers(req Request) bool {
	return a.check(ActionListUsers, req)
}

func (a TableAuthorizer) CanListRoles(req Request) bool {
	return a.check(ActionListRoles, req)
}
