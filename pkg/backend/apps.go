package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/appdeck-hq/appdeck-client/pkg/httpclient"
)

// GetAppByName resolves an app name to its id on the backend.
func (c *Client) GetAppByName(ctx context.Context, appName string) (string, error) {
	// The trailing slash inside the query string is what the backend routes on.
	endpoint := fmt.Sprintf("%s/%s/apps?app_name=%s/", c.host, c.suffix, url.QueryEscape(appName))

	resp, err := c.do("get app", endpoint, func() (httpclient.Response, error) {
		return c.http.Get(ctx, endpoint, nil)
	})
	if err != nil {
		return "", err
	}

	var out appResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode get app response: %w", err)
	}
	return out.AppID, nil
}

// CreateApp creates a new app and returns its id. The backend does not
// deduplicate names, so repeating the call creates a second app.
func (c *Client) CreateApp(ctx context.Context, appName string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/apps/", c.host, c.suffix)

	resp, err := c.do("create app", endpoint, func() (httpclient.Response, error) {
		return c.http.Post(ctx, endpoint, createAppRequest{AppName: appName}, nil)
	})
	if err != nil {
		return "", err
	}

	var out appResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode create app response: %w", err)
	}
	return out.AppID, nil
}
