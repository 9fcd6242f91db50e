package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"DealSense/internal/domain/models"
)

// DealReportUseCase fans out to every engine component and assembles one
// aggregate report. Component failures land in Errors; the report itself
// is returned whenever at least the fan-out could run.
type DealReportUseCase struct {
	intel   *IntelligenceUseCase
	timeout time.Duration
}

func NewDealReportUseCase(intel *IntelligenceUseCase) *DealReportUseCase {
	return &DealReportUseCase{intel: intel, timeout: 10 * time.Second}
}

type ReportParams struct {
	ASIN  string
	Price int64
	N     int
}

func (uc *DealReportUseCase) GetReport(ctx context.Context, p ReportParams) (*models.DealReport, error) {
	if p.ASIN == "" {
		return nil, fmt.Errorf("asin required")
	}
	if p.N <= 0 {
		p.N = 365
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.DealReport{
		ASIN:      p.ASIN,
		Timestamp: time.Now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.intel.Patterns(ctx, p.ASIN, p.N)
		ch <- item{"patterns", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.intel.DealScore(ctx, p.ASIN, p.Price, p.N)
		ch <- item{"score", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.intel.Predict(ctx, p.ASIN, 7, p.N)
		ch <- item{"prediction", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.intel.Stockout(ctx, p.ASIN, 500)
		ch <- item{"stockout", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "patterns":
			res.Patterns = it.val.(*models.PatternReport)
		case "score":
			res.Score = it.val.(*models.DealScore)
		case "prediction":
			res.Prediction = it.val.(*models.Prediction)
		case "stockout":
			res.Stockout = it.val.(*models.StockoutForecast)
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
