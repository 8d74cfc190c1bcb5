// api/gateway/qido_client.go
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medicube/radgate/api/config"
	logger "github.com/medicube/radgate/api/logging"
)

// QidoClient queries the upstream QIDO-RS archive. Responses are kept as raw
// JSON objects so the filtering layer can return them to callers unchanged.
type QidoClient struct {
	baseURL    string
	qidoPath   string
	username   string
	password   string
	token      string
	httpClient *http.Client
}

func NewQidoClient() *QidoClient {
	return &QidoClient{
		baseURL:  strings.TrimRight(config.GetString("dcm4chee.baseURL"), "/"),
		qidoPath: config.GetString("dcm4chee.qidoPath"),
		username: config.GetString("dcm4chee.username"),
		password: config.GetString("dcm4chee.password"),
		token:    config.GetString("dcm4chee.token"),
		httpClient: &http.Client{
			Timeout: config.GetDuration("dcm4chee.timeout"),
		},
	}
}

func (c *QidoClient) Studies(ctx context.Context, params []Param) ([]map[string]interface{}, error) {
	return c.query(ctx, "/studies", params)
}

func (c *QidoClient) Series(ctx context.Context, studyUID string, params []Param) ([]map[string]interface{}, error) {
	path := fmt.Sprintf("/studies/%s/series", url.PathEscape(studyUID))
	return c.query(ctx, path, params)
}

func (c *QidoClient) Instances(ctx context.Context, studyUID, seriesUID string, params []Param) ([]map[string]interface{}, error) {
	path := fmt.Sprintf("/studies/%s/series/%s/instances", url.PathEscape(studyUID), url.PathEscape(seriesUID))
	return c.query(ctx, path, params)
}

func (c *QidoClient) query(ctx context.Context, path string, params []Param) ([]map[string]interface{}, error) {
	start := time.Now()
	endpoint := c.baseURL + c.qidoPath + path

	values := url.Values{}
	for _, p := range params {
		values.Add(p.Key, p.Value)
	}
	if encoded := values.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build QIDO request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("QIDO request failed",
			zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("QIDO request failed: %w", err)
	}
	defer res.Body.Close()

	// An archive with no matches answers 204 with an empty body.
	if res.StatusCode == http.StatusNoContent {
		return []map[string]interface{}{}, nil
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		logger.Error("QIDO returned error status",
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("QIDO returned status %d", res.StatusCode)
	}

	var items []map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode QIDO response: %w", err)
	}

	logger.Debug("QIDO query completed",
		zap.String("path", path),
		zap.Int("items", len(items)),
		zap.Duration("duration", time.Since(start)))
	return items, nil
}
