package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	val   string
	err   error
	calls int
}

func (f *fakeGetter) GetParameter(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.val, f.err
}

func TestNewClient_NilGetter(t *testing.T) {
	_, err := NewClient(nil, "/honeypot")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nil")
}

func TestNewClient_EmptyPrefix(t *testing.T) {
	_, err := NewClient(&fakeGetter{}, "  ")
	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(&fakeGetter{}, "/honeypot/")
	require.NoError(t, err)
	require.Equal(t, defaultModel, c.model)
	require.Equal(t, "/honeypot/gemini-api-key", c.keyParameterName())
}

func TestWithModel(t *testing.T) {
	c, err := NewClient(&fakeGetter{}, "/honeypot", WithModel("gemini-2.0-flash"))
	require.NoError(t, err)
	require.Equal(t, "gemini-2.0-flash", c.model)

	// Blank override keeps the default.
	c, err = NewClient(&fakeGetter{}, "/honeypot", WithModel("   "))
	require.NoError(t, err)
	require.Equal(t, defaultModel, c.model)
}

func TestReady_FalseWhenKeyUnavailable(t *testing.T) {
	c, err := NewClient(&fakeGetter{err: errors.New("no such parameter")}, "/honeypot")
	require.NoError(t, err)
	require.False(t, c.Ready())
}

func TestReady_FalseWhenKeyEmpty(t *testing.T) {
	c, err := NewClient(&fakeGetter{val: "   "}, "/honeypot")
	require.NoError(t, err)
	require.False(t, c.Ready())
}

func TestGenerate_DefinitiveResolutionFailureIsCached(t *testing.T) {
	getter := &fakeGetter{err: errors.New("no such parameter")}
	c, err := NewClient(getter, "/honeypot")
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "prompt")
	require.Error(t, err)

	// A missing parameter does not heal mid-process; the cached failure is
	// returned without another lookup.
	getter.err = nil
	getter.val = "a-key"
	_, err = c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Equal(t, 1, getter.calls)
}

func TestGenerate_TimedOutResolutionIsRetried(t *testing.T) {
	getter := &fakeGetter{err: fmt.Errorf("get parameter: %w", context.DeadlineExceeded)}
	c, err := NewClient(getter, "/honeypot")
	require.NoError(t, err)

	// A slow parameter store on the first call, Ready's bounded probe
	// included, must not disable resolution for good.
	require.False(t, c.Ready())

	getter.err = errors.New("no such parameter")
	_, err = c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no such parameter")
	require.Equal(t, 2, getter.calls)
}

func TestGenerate_CancelledResolutionIsRetried(t *testing.T) {
	getter := &fakeGetter{err: context.Canceled}
	c, err := NewClient(getter, "/honeypot")
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, context.Canceled)

	getter.err = errors.New("access denied")
	_, err = c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "access denied")

	// The second failure is definitive and cached from here on.
	_, err = c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Equal(t, 2, getter.calls)
}
