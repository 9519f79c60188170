package email_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"linkguard/internal/config"
	"linkguard/internal/email"
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
)

func TestService_Classify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "email_model.json")
	require.NoError(t, trainModel(t).Save(path))

	svc := email.NewService(email.Options{ModelPath: path})

	got, err := svc.Classify(context.Background(), []string{"win free money prize", "project meeting deadline"})
	require.NoError(t, err)
	require.Equal(t, []domain.EmailCategory{domain.EmailCategorySpam, domain.EmailCategoryImportant}, got)
}

func TestService_Unavailable(t *testing.T) {
	svc := email.NewService(email.Options{ModelPath: filepath.Join(t.TempDir(), "missing.json")})

	got, err := svc.Classify(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = svc.Classify(context.Background(), []string{"hello"})
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestNewOptions(t *testing.T) {
	var cfg config.Config
	cfg.Email.ModelPath = "models/email.json"

	require.Equal(t, email.Options{ModelPath: "models/email.json"}, email.NewOptions(&cfg))
}
