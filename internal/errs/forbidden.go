package errs

import "net/http"

// ErrForbidden is returned when the acting user is not allowed to see
// or mutate the target resource. Callers render it as a 403, never a
// generic failure.
var ErrForbidden = &Exception{
	Message:    "not allowed",
	StatusCode: http.StatusForbidden,
}

var ErrOwnerOnly = &Exception{
	Message:    "only the workspace owner can do this",
	StatusCode: http.StatusForbidden,
}

var ErrArchiveNotPermitted = &Exception{
	Message:    "only the workspace owner, task creator, or an assignee can archive",
	StatusCode: http.StatusForbidden,
}

var ErrAccountInactive = &Exception{
	Message:    "please verify your email before signing in",
	StatusCode: http.StatusForbidden,
}
