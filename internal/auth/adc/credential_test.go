package adc

import (
	"context"
	"net/http"
	"testing"

	"cloud.google.com/go/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genaicheck/pkg/errors"
)

func TestRefresh(t *testing.T) {
	t.Run("stores the token", func(t *testing.T) {
		token := &auth.Token{Value: "ya29.fresh", Type: "Bearer"}
		cred := NewServiceAccount(newTestCredentials(`{"type":"service_account"}`, stubTokenProvider{token: token}), "", "")

		assert.Nil(t, cred.Token())
		require.NoError(t, cred.Refresh(context.Background()))
		assert.Equal(t, "ya29.fresh", cred.Token().Value)
	})

	t.Run("wraps token errors", func(t *testing.T) {
		cause := &auth.Error{
			Response: &http.Response{StatusCode: http.StatusBadRequest},
			Body:     []byte(`{"error":"invalid_grant"}`),
		}
		cred := NewAuthorizedUser(newTestCredentials(`{"type":"authorized_user"}`, stubTokenProvider{err: cause}), "", "")

		err := cred.Refresh(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsRefreshError(err))
		assert.ErrorIs(t, err, cause)

		var refreshErr *errors.RefreshError
		require.ErrorAs(t, err, &refreshErr)
		assert.Equal(t, TypeAuthorizedUser, refreshErr.Kind)
		assert.Nil(t, cred.Token())
	})

	t.Run("nil credentials", func(t *testing.T) {
		cred := NewOther(nil, TypeExternalAccount)
		err := cred.Refresh(context.Background())
		assert.True(t, errors.IsRefreshError(err))
	})
}
