package garmin

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jfparis/home-assistant-garmin-connect/internal/xjson"
)

type wellnessService struct {
	client *Client
}

func (s *wellnessService) GetSleepData(ctx context.Context, day time.Time) (xjson.Value, error) {
	const route = "/sleep-service/sleep/dailySleepData"

	query := url.Values{"date": {day.Format(dateLayout)}}

	var sleep xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, query, nil, &sleep); err != nil {
		return nil, err
	}
	return sleep, nil
}

func (s *wellnessService) GetHRVData(ctx context.Context, day time.Time) (xjson.Value, error) {
	route := "/hrv-service/hrv/" + day.Format(dateLayout)

	var hrv xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &hrv); err != nil {
		return nil, err
	}
	return hrv, nil
}

func (s *wellnessService) GetDeviceAlarms(ctx context.Context) ([]xjson.Value, error) {
	const route = "/device-service/deviceservice/device-alarms"

	var alarms []xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &alarms); err != nil {
		return nil, err
	}
	return alarms, nil
}
