// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
)

var ErrIdentityNotFound = errors.New("identity not found")

var _ AdminClientInterface = (*AdminClient)(nil)

type AdminClient struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func newAPIClient(url string) *ory.APIClient {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: url}}

	return ory.NewAPIClient(conf)
}

// toIdentity keeps the identity id and the email and name traits, anything
// else the schema carries is ignored.
func toIdentity(i ory.Identity) *types.Identity {
	identity := &types.Identity{ID: i.GetId()}

	traits, ok := i.GetTraits().(map[string]interface{})
	if !ok {
		return identity
	}

	if email, ok := traits["email"].(string); ok {
		identity.Email = types.NormalizeEmail(email)
	}

	switch name := traits["name"].(type) {
	case string:
		identity.DisplayName = name
	case map[string]interface{}:
		first, _ := name["first"].(string)
		last, _ := name["last"].(string)
		if first != "" && last != "" {
			identity.DisplayName = first + " " + last
		} else {
			identity.DisplayName = first + last
		}
	}

	return identity
}

func (c *AdminClient) GetIdentity(ctx context.Context, id string) (*types.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.AdminClient.GetIdentity")
	defer span.End()

	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return toIdentity(*identity), nil
}

func (c *AdminClient) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.AdminClient.GetIdentityIDByEmail")
	defer span.End()

	// NOTE: we are setting an empty page token because of https://github.com/ory/sdk/issues/461
	ids, _, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(types.NormalizeEmail(email)).PageToken("").Execute()
	if err != nil {
		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return "", ErrIdentityNotFound
	}

	return ids[0].GetId(), nil
}

func NewAdminClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *AdminClient {
	return &AdminClient{
		client:  newAPIClient(kratosAdminURL),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
