package analytics

import (
	"context"
	"fmt"

	domsvc "DealSense/internal/domain/service"
	"DealSense/pkg/config"
)

// HTTPSuccessModel fetches the deal success probability from the trained
// model service. The urgency classifier treats this signal as optional.
type HTTPSuccessModel struct{ base *HTTPServiceBase }

func NewHTTPSuccessModel(cfg *config.Config) *HTTPSuccessModel {
	return &HTTPSuccessModel{base: NewHTTPServiceBase(cfg)}
}

type successReq struct {
	ASIN     string             `json:"asin"`
	Features map[string]float64 `json:"features"`
}

type successResp struct {
	Probability float64 `json:"probability"`
	Model       string  `json:"model"`
}

func (s *HTTPSuccessModel) PredictSuccess(ctx context.Context, asin string, features map[string]float64) (float64, error) {
	var sr successResp
	if err := s.base.PostJSON(ctx, "/success/predict", successReq{ASIN: asin, Features: features}, &sr); err != nil {
		return 0, fmt.Errorf("post success: %w", err)
	}
	if sr.Probability < 0 || sr.Probability > 1 {
		return 0, fmt.Errorf("probability out of range: %f", sr.Probability)
	}
	return sr.Probability, nil
}

var _ domsvc.SuccessModel = (*HTTPSuccessModel)(nil)
