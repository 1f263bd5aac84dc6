package rbac

// Permission names used by the HTTP layer.
const (
	PermUsersList        = "users:list"
	PermUserUpdate       = "user:update"
	PermUsersUpdateAny   = "users:update-any"
	PermCourseView       = "course:view"
	PermCourseCreate     = "course:create"
	PermCourseEnroll     = "course:enroll"
	PermExamView         = "exam:view"
	PermExamCreate       = "exam:create"
	PermExamTake         = "exam:take"
	PermSubmissionOwn    = "submission:view-own"
	PermSubmissionAll    = "submission:view-all"
	PermSubmissionCreate = "submission:create"
	PermSessionView      = "session:view"
	PermSessionCreate    = "session:create"
	PermSessionJoin      = "session:join"
	PermSessionChat      = "session:chat"
	PermInsightsView     = "insights:view"
)

// RolePermissions gates what each role sees. It is presentation-level
// gating only; the datastore itself accepts any caller.
var RolePermissions = map[string][]string{
	"student": {
		PermUserUpdate,
		PermCourseView,
		PermCourseEnroll,
		PermExamView,
		PermExamTake,
		PermSubmissionOwn,
		PermSubmissionCreate,
		PermSessionView,
		PermSessionJoin,
		PermSessionChat,
	},
	"instructor": {
		PermUsersList,
		PermUserUpdate,
		"course:*",
		"exam:*",
		"submission:*",
		"session:*",
		PermInsightsView,
	},
	"institution": {
		"*",
	},
}
