package autherr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/storefront/internal/services/auth"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, wantCode: http.StatusUnauthorized, wantMsg: "invalid credentials"},
		{name: "user exists", err: fmt.Errorf("op: %w", auth.ErrUserExists), wantCode: http.StatusConflict, wantMsg: "user already exists"},
		{name: "in progress", err: auth.ErrAuthInProgress, wantCode: http.StatusConflict, wantMsg: "authentication already in progress"},
		{name: "login failed", err: auth.ErrLoginFailed, wantCode: http.StatusBadGateway, wantMsg: "authentication failed"},
		{name: "registration failed", err: auth.ErrRegistrationFailed, wantCode: http.StatusBadGateway, wantMsg: "authentication failed"},
		{name: "unknown", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMsg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Status(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
