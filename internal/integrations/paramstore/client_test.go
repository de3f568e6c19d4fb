package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// capturingAPI records the request it receives so tests can assert on the
// exact lookup the client performs.
type capturingAPI struct {
	in     *ssm.GetParameterInput
	values map[string]string
	err    error
}

func (f *capturingAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[*in.Name]
	if !ok {
		return &ssm.GetParameterOutput{}, nil
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name:  in.Name,
		Value: &v,
		Type:  types.ParameterTypeSecureString,
	}}, nil
}

func honeypotSecrets() map[string]string {
	return map[string]string{
		"/honeypot/api-key":        "shared-secret",
		"/honeypot/gemini-api-key": "AIzaFakeKey",
	}
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

func TestGetParameter_ResolvesHoneypotSecrets(t *testing.T) {
	tests := []struct {
		name  string
		param string
		want  string
	}{
		{name: "shared api key", param: "/honeypot/api-key", want: "shared-secret"},
		{name: "gemini api key", param: "/honeypot/gemini-api-key", want: "AIzaFakeKey"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := &capturingAPI{values: honeypotSecrets()}
			client, err := New(api)
			require.NoError(t, err)

			got, err := client.GetParameter(context.Background(), tc.param)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.param, *api.in.Name)
		})
	}
}

func TestGetParameter_RequestsDecryption(t *testing.T) {
	api := &capturingAPI{values: honeypotSecrets()}
	client, err := New(api)
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "/honeypot/gemini-api-key")
	require.NoError(t, err)
	require.NotNil(t, api.in.WithDecryption)
	require.True(t, *api.in.WithDecryption)
}

func TestGetParameter_TrimsName(t *testing.T) {
	api := &capturingAPI{values: honeypotSecrets()}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameter(context.Background(), "  /honeypot/api-key \n")
	require.NoError(t, err)
	require.Equal(t, "shared-secret", got)
	require.Equal(t, "/honeypot/api-key", *api.in.Name)
}

func TestGetParameter_EmptyName(t *testing.T) {
	client, err := New(&capturingAPI{})
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "   ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestGetParameter_APIErrorNamesParameter(t *testing.T) {
	client, err := New(&capturingAPI{err: errors.New("AccessDeniedException")})
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "/honeypot/api-key")
	require.Error(t, err)
	require.ErrorContains(t, err, "/honeypot/api-key")
	require.ErrorContains(t, err, "AccessDeniedException")
}

func TestGetParameter_UnknownParameterHasNoValue(t *testing.T) {
	client, err := New(&capturingAPI{values: honeypotSecrets()})
	require.NoError(t, err)

	_, err = client.GetParameter(context.Background(), "/honeypot/unknown")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no value")
}

func TestGetParameter_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "/honeypot/api-key")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}
