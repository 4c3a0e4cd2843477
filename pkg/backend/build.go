package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// SendDockerTar uploads a build-context tarball and asks the backend to build
// the variant's image from it, returning the resulting Image record. The
// archive is streamed from disk; the file handle is closed on every exit path.
//
// An HTTP 500 here means the build itself failed and is reported as a
// *BuildError carrying the backend's log; every other failure is the usual
// *RequestError.
func (c *Client) SendDockerTar(ctx context.Context, appID, variantName, tarPath string) (Image, error) {
	const op = "build image"

	f, err := os.Open(tarPath)
	if err != nil {
		return Image{}, fmt.Errorf("open build context: %w", err)
	}
	defer f.Close()

	endpoint := fmt.Sprintf("%s/%s/containers/build_image/?app_id=%s&variant_name=%s",
		c.host, c.suffix, url.QueryEscape(appID), url.QueryEscape(variantName))

	c.log.Debugw("backend request", "op", op, "url", endpoint, "tar", tarPath)

	resp, err := c.upload.UploadFile(ctx, endpoint, "tar_file", filepath.Base(tarPath), f)
	if err != nil {
		return Image{}, newTransportError(op, err)
	}

	if resp.StatusCode() == http.StatusInternalServerError {
		return Image{}, &BuildError{Log: bodySnippet(resp.Body())}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return Image{}, newStatusError(op, resp.StatusCode(), resp.Body())
	}

	var img Image
	if err := json.Unmarshal(resp.Body(), &img); err != nil {
		return Image{}, fmt.Errorf("decode build image response: %w", err)
	}
	return img, nil
}
