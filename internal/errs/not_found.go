package errs

import "net/http"

var ErrWorkspaceNotFound = &Exception{
	Message:    "workspace not found",
	StatusCode: http.StatusNotFound,
}

var ErrProjectNotFound = &Exception{
	Message:    "project not found",
	StatusCode: http.StatusNotFound,
}

var ErrColumnNotFound = &Exception{
	Message:    "column not found",
	StatusCode: http.StatusNotFound,
}

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrTagNotFound = &Exception{
	Message:    "tag not found",
	StatusCode: http.StatusNotFound,
}

var ErrUserNotFound = &Exception{
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}

var ErrInvalidCredentials = &Exception{
	Message:    "invalid username or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidActivationToken = &Exception{
	Message:    "activation link is invalid or has expired",
	StatusCode: http.StatusBadRequest,
}
