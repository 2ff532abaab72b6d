package domain

// CtxKey namespaces the values the auth middleware stores on the request
// context.
type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)
