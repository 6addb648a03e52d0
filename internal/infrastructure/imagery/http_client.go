package imagery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lulc_service/internal/domain/model"
)

// HTTPImageryClient talks to the acquisition service over REST. The
// service delivers co-registered band stacks and label rasters as plain
// JSON grids; raster file formats never cross this boundary.
type HTTPImageryClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPImageryClient(endpoint string) *HTTPImageryClient {
	return &HTTPImageryClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type rasterRequest struct {
	BBox    string `json:"bbox"`
	Year    int    `json:"year"`
	Product string `json:"product"`
}

type stackResponse struct {
	Rows   int       `json:"rows"`
	Cols   int       `json:"cols"`
	Bands  int       `json:"bands"`
	NoData float64   `json:"no_data"`
	Pixels []float64 `json:"pixels"`
}

type labelResponse struct {
	Rows   int                    `json:"rows"`
	Cols   int                    `json:"cols"`
	Labels []model.LandCoverClass `json:"labels"`
}

func (c *HTTPImageryClient) GetBandStack(ctx context.Context, bbox string, year int) (*model.BandStack, error) {
	var resp stackResponse
	if err := c.post(ctx, "/bandstack", rasterRequest{BBox: bbox, Year: year, Product: "sentinel2"}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Pixels) != resp.Rows*resp.Cols*resp.Bands {
		return nil, fmt.Errorf("acquisition service returned %d pixel values for a %dx%dx%d stack",
			len(resp.Pixels), resp.Rows, resp.Cols, resp.Bands)
	}
	return &model.BandStack{
		Rows:   resp.Rows,
		Cols:   resp.Cols,
		Bands:  resp.Bands,
		Epoch:  year,
		NoData: resp.NoData,
		Pixels: resp.Pixels,
	}, nil
}

func (c *HTTPImageryClient) GetLabelRaster(ctx context.Context, bbox string, year int) (*model.ClassMap, error) {
	var resp labelResponse
	if err := c.post(ctx, "/labels", rasterRequest{BBox: bbox, Year: year, Product: "dynamic_world"}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Labels) != resp.Rows*resp.Cols {
		return nil, fmt.Errorf("acquisition service returned %d labels for a %dx%d raster",
			len(resp.Labels), resp.Rows, resp.Cols)
	}
	return &model.ClassMap{Rows: resp.Rows, Cols: resp.Cols, Epoch: year, Labels: resp.Labels}, nil
}

func (c *HTTPImageryClient) post(ctx context.Context, path string, reqBody any, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal acquisition request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create acquisition request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("acquisition service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("acquisition service returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode acquisition response: %w", err)
	}
	return nil
}
