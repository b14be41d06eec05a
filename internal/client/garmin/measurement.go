package garmin

import (
	"context"
	"net/http"
)

type measurementService struct {
	client *Client
}

func (s *measurementService) AddBodyComposition(ctx context.Context, entry BodyCompositionEntry) error {
	const route = "/weight-service/user-weight"

	return s.client.do(ctx, http.MethodPost, route, nil, entry, nil)
}

func (s *measurementService) SetBloodPressure(ctx context.Context, reading BloodPressureReading) error {
	const route = "/bloodpressure-service/bloodpressure"

	return s.client.do(ctx, http.MethodPost, route, nil, reading, nil)
}
