// Package paramstore resolves the honeypot's secrets. In the Lambda
// deployment they live in AWS SSM Parameter Store under a shared prefix,
// <prefix>/api-key for the caller's shared secret and <prefix>/gemini-api-key
// for generation. The standalone server resolves the same names from the
// environment through EnvGetter.
package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the slice of the AWS SSM surface Client needs.
// *ssm.Client from aws-sdk-go-v2 satisfies it.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Getter resolves a parameter by its full name. Both *Client and *EnvGetter
// satisfy it; consumers (the Gemini client, the entrypoints) depend on this
// rather than a concrete store.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Client reads parameters from SSM Parameter Store. Both honeypot secrets are
// stored as SecureString, so every read requests decryption.
type Client struct {
	api ssmAPI
}

// New creates a Client on top of the given SSM API.
func New(api ssmAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	return &Client{api: api}, nil
}

// GetParameter fetches one decrypted parameter value. The name is trimmed
// before the lookup so a padded PARAM_PREFIX cannot produce a phantom name.
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if c.api == nil {
		return "", errors.New("paramstore: client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}

	withDecryption := true
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		return "", fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("paramstore: parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}
