package garmin

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jfparis/home-assistant-garmin-connect/internal/xjson"
)

type activityService struct {
	client *Client
}

func (s *activityService) GetActivitiesByDate(ctx context.Context, start, end time.Time) ([]xjson.Value, error) {
	const route = "/activitylist-service/activities/search/activities"

	query := url.Values{
		"startDate": {start.Format(dateLayout)},
		"endDate":   {end.Format(dateLayout)},
	}

	var activities []xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, query, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *activityService) GetActivityTypes(ctx context.Context) ([]ActivityType, error) {
	const route = "/activity-service/activity/activityTypes"

	var types []ActivityType
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (s *activityService) GetEarnedBadges(ctx context.Context) ([]xjson.Value, error) {
	const route = "/badge-service/badge/earned"

	var badges []xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}
