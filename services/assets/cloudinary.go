package assetsvc

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
	"github.com/littleheartschool/backend/core/content"
)

const destroyURL = "https://api.cloudinary.com/v1_1/%s/image/destroy"

// cloudinaryHost removes uploaded media from Cloudinary. Uploads happen
// client-side with an unsigned preset; the backend only ever deletes.
type cloudinaryHost struct {
	conf   core.AssetsConfig
	client *http.Client
	logger core.Logger
}

var _ content.AssetHost = (*cloudinaryHost)(nil)

func NewCloudinaryHost(conf *core.Config, logger core.Logger) *cloudinaryHost {
	return &cloudinaryHost{
		conf:   conf.Assets,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (h *cloudinaryHost) DeleteAsset(ctx context.Context, publicID string) error {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", ts)
	form.Set("api_key", h.conf.APIKey)
	form.Set("signature", h.sign(publicID, ts))

	endpoint := fmt.Sprintf(destroyURL, h.conf.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "building destroy request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := h.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling cloudinary")
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("cloudinary destroy: status %d", res.StatusCode)
	}

	var body struct {
		Result string `json:"result"`
	}
	if err = json.NewDecoder(res.Body).Decode(&body); err != nil {
		return errors.Wrap(err, "decoding cloudinary response")
	}
	// "not found" is fine; the asset is gone either way
	if body.Result != "ok" && body.Result != "not found" {
		return errors.Errorf("cloudinary destroy: result %q", body.Result)
	}
	return nil
}

// sign builds the request signature per the Cloudinary auth scheme:
// SHA1 of the sorted params concatenated with the API secret.
func (h *cloudinaryHost) sign(publicID, timestamp string) string {
	payload := "public_id=" + publicID + "&timestamp=" + timestamp + h.conf.APISecret
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
