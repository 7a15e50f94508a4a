package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"forbidden sentinel", ErrForbidden, http.StatusForbidden},
		{"not found sentinel", ErrTaskNotFound, http.StatusNotFound},
		{"wrapped exception", fmt.Errorf("lookup: %w", ErrWorkspaceNotFound), http.StatusNotFound},
		{"validation error", NewValidation("name", "required"), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
