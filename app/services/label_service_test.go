package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tillpoint/app/services"
)

func TestLabelService_TokenRoundTrip(t *testing.T) {
	svc := services.NewLabelService(newTestDB(t))

	token, err := svc.DownloadToken(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := svc.ResolveToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestLabelService_GarbageTokenRejected(t *testing.T) {
	svc := services.NewLabelService(newTestDB(t))

	_, err := svc.ResolveToken("not-a-token")
	assert.Error(t, err)
}
