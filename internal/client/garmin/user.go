package garmin

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jfparis/home-assistant-garmin-connect/internal/xjson"
)

const dateLayout = "2006-01-02"

type userService struct {
	client *Client
}

func (s *userService) GetUserSummary(ctx context.Context, day time.Time) (xjson.Value, error) {
	const route = "/usersummary-service/usersummary/daily"

	query := url.Values{"calendarDate": {day.Format(dateLayout)}}

	var summary xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, query, nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *userService) GetBodyComposition(ctx context.Context, day time.Time) (xjson.Value, error) {
	const route = "/weight-service/weight/dateRange"

	query := url.Values{
		"startDate": {day.Format(dateLayout)},
		"endDate":   {day.Format(dateLayout)},
	}

	var body xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, query, nil, &body); err != nil {
		return nil, err
	}
	return body, nil
}
