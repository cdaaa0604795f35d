package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd-labs/revcrew/internal/issue"
)

func TestMockGateway_ScriptedSequence(t *testing.T) {
	mg := NewMockGateway()
	mg.Script("tmpl-a",
		MockResponse{Err: NewTransientError(errors.New("rate limited"))},
		MockResponse{Result: Result{Issues: []issue.Issue{{Kind: issue.KindStyle, Severity: issue.SeverityInfo, Description: "ok"}}}},
	)

	_, err := mg.Invoke(context.Background(), "tmpl-a", Variables{})
	require.Error(t, err)
	var transient *TransientError
	assert.True(t, errors.As(err, &transient))

	res, err := mg.Invoke(context.Background(), "tmpl-a", Variables{})
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "ok", res.Issues[0].Description)

	// Queue exhausted: repeats the last response.
	res2, err2 := mg.Invoke(context.Background(), "tmpl-a", Variables{})
	require.NoError(t, err2)
	assert.Equal(t, res, res2)

	assert.Equal(t, 3, mg.CallCount("tmpl-a"))
}

func TestMockGateway_UnscriptedTemplate_ReturnsEmpty(t *testing.T) {
	mg := NewMockGateway()
	res, err := mg.Invoke(context.Background(), "unknown", Variables{})
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
}

func TestErrorTypes_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	var fatal error = NewFatalError(cause)
	assert.ErrorIs(t, fatal, cause)

	var transient error = NewTransientError(cause)
	assert.ErrorIs(t, transient, cause)
}
