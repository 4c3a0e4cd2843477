package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/appdeck-hq/appdeck-client/pkg/httpclient"
)

// Variant container actions accepted by the backend.
const (
	ActionStart = "START"
	ActionStop  = "STOP"
)

// AddVariantFromImage registers a variant backed by an already-built image and
// returns the backend's variant record as raw JSON.
func (c *Client) AddVariantFromImage(ctx context.Context, appID, variantName string, image Image) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s/apps/%s/variant/from-image/", c.host, c.suffix, appID)

	body := addVariantRequest{
		VariantName: variantName,
		DockerID:    image.DockerID,
		Tags:        image.Tags,
		BaseName:    nil,
		ConfigName:  nil,
	}

	resp, err := c.do("add variant", endpoint, func() (httpclient.Response, error) {
		return c.http.Post(ctx, endpoint, body, nil)
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body()), nil
}

// StartVariant asks the backend to start the container for a variant and
// returns the exposed endpoint URI (empty when the backend reports none).
// Optional env vars are injected into the container.
func (c *Client) StartVariant(ctx context.Context, variantID string, envVars map[string]string) (string, error) {
	return c.variantAction(ctx, variantID, ActionStart, envVars)
}

// StopVariant asks the backend to stop the container for a variant.
func (c *Client) StopVariant(ctx context.Context, variantID string) error {
	_, err := c.variantAction(ctx, variantID, ActionStop, nil)
	return err
}

func (c *Client) variantAction(ctx context.Context, variantID, action string, envVars map[string]string) (string, error) {
	// Start/stop is mounted at the host root, not under the URL suffix.
	endpoint := fmt.Sprintf("%s/variants/%s/", c.host, variantID)

	body := variantActionRequest{Action: action}
	if len(envVars) > 0 {
		body.EnvVars = &envVarsPayload{EnvVars: envVars}
	}

	op := strings.ToLower(action) + " variant"
	resp, err := c.do(op, endpoint, func() (httpclient.Response, error) {
		return c.http.Put(ctx, endpoint, body, nil)
	})
	if err != nil {
		return "", err
	}

	var out variantActionResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode %s response: %w", op, err)
	}
	return out.URI, nil
}

// ListVariants returns all variants registered for an app, in backend order.
func (c *Client) ListVariants(ctx context.Context, appID string) ([]AppVariant, error) {
	endpoint := fmt.Sprintf("%s/%s/apps/%s/variants/", c.host, c.suffix, appID)

	resp, err := c.do("list variants", endpoint, func() (httpclient.Response, error) {
		return c.http.Get(ctx, endpoint, nil)
	})
	if err != nil {
		return nil, err
	}

	var variants []AppVariant
	if err := json.Unmarshal(resp.Body(), &variants); err != nil {
		return nil, fmt.Errorf("decode list variants response: %w", err)
	}
	return variants, nil
}

// RemoveVariant deletes a variant on the backend.
func (c *Client) RemoveVariant(ctx context.Context, variantID string) error {
	endpoint := fmt.Sprintf("%s/%s/variants/%s", c.host, c.suffix, variantID)

	_, err := c.do("remove variant", endpoint, func() (httpclient.Response, error) {
		return c.http.Delete(ctx, endpoint, map[string]string{"Content-Type": "application/json"})
	})
	return err
}

// UpdateVariantImage points an existing variant at a different image.
func (c *Client) UpdateVariantImage(ctx context.Context, variantID string, image Image) error {
	endpoint := fmt.Sprintf("%s/%s/variants/%s/image/", c.host, c.suffix, variantID)

	_, err := c.do("update variant image", endpoint, func() (httpclient.Response, error) {
		return c.http.Put(ctx, endpoint, updateImageRequest{Image: image}, nil)
	})
	return err
}
