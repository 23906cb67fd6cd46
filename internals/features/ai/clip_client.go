// internals/features/ai/clip_client.go
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"snop_backend/internals/configs"
)

/* =======================================================
   Klien sidecar CLIP untuk verifikasi foto IRL.

   Sidecar (service Python kecil) menerima gambar + daftar
   label kandidat dan mengembalikan skor zero-shot per label.
   ======================================================= */

type CLIPClient struct {
	baseURL string
	http    *http.Client
}

func NewCLIPClient() *CLIPClient {
	return &CLIPClient{
		baseURL: configs.GetEnv("CLIP_SIDECAR_URL", "http://localhost:8600"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type clipRequest struct {
	ImageBase64 string   `json:"image_base64"`
	Labels      []string `json:"labels"`
}

type clipResponse struct {
	Scores []float64 `json:"scores"` // sejajar dengan labels
}

// ClassifyImage mengembalikan skor confidence per label (0..1)
func (c *CLIPClient) ClassifyImage(ctx context.Context, image []byte, labels []string) ([]float64, error) {
	body, err := sonic.Marshal(clipRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
		Labels:      labels,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sidecar CLIP status %d", resp.StatusCode)
	}

	var out clipResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Scores) != len(labels) {
		return nil, fmt.Errorf("jumlah skor (%d) tidak cocok dengan label (%d)", len(out.Scores), len(labels))
	}
	return out.Scores, nil
}

// BestScore skor tertinggi di antara label
func BestScore(scores []float64) float64 {
	best := 0.0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	return best
}
