package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/testutil"
)

func TestAuthServiceAdminToken(t *testing.T) {
	auth := NewAuthService(testutil.Logger(t), "secret")

	token, err := auth.IssueToken("admin-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	rd, err := auth.IsAuthorized(token)
	require.NoError(t, err)
	require.Equal(t, "admin-1", rd.Subject)
	require.Equal(t, RoleAdmin, rd.Role)
}

func TestAuthServiceRejects(t *testing.T) {
	auth := NewAuthService(testutil.Logger(t), "secret")
	other := NewAuthService(testutil.Logger(t), "other-secret")

	editor, err := auth.IssueToken("editor-1", "editor", time.Hour)
	require.NoError(t, err)
	rd, err := auth.IsAuthorized(editor)
	require.True(t, errors.Is(err, ErrForbidden), "err=%v", err)
	require.Equal(t, "editor-1", rd.Subject)

	forged, err := other.IssueToken("admin-1", RoleAdmin, time.Hour)
	require.NoError(t, err)
	_, err = auth.IsAuthorized(forged)
	require.True(t, errors.Is(err, ErrInvalidToken), "err=%v", err)

	expired, err := auth.IssueToken("admin-1", RoleAdmin, -time.Hour)
	require.NoError(t, err)
	_, err = auth.IsAuthorized(expired)
	require.True(t, errors.Is(err, ErrInvalidToken), "err=%v", err)

	_, err = auth.IsAuthorized("  ")
	require.True(t, errors.Is(err, ErrMissingToken))

	_, err = auth.IsAuthorized("not.a.jwt")
	require.True(t, errors.Is(err, ErrInvalidToken))
}
