package garmin

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jfparis/home-assistant-garmin-connect/internal/xjson"
)

type gearService struct {
	client *Client
}

func (s *gearService) GetGear(ctx context.Context, profileID int64) ([]Gear, error) {
	const route = "/gear-service/gear/filterGear"

	query := url.Values{"userProfilePk": {strconv.FormatInt(profileID, 10)}}

	var gear []Gear
	if err := s.client.do(ctx, http.MethodGet, route, query, nil, &gear); err != nil {
		return nil, err
	}
	return gear, nil
}

func (s *gearService) GetGearStats(ctx context.Context, uuid string) (xjson.Value, error) {
	route := "/gear-service/gear/stats/" + uuid

	var stats xjson.Value
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *gearService) GetGearDefaults(ctx context.Context, profileID int64) ([]GearDefault, error) {
	route := "/gear-service/gear/user/" + strconv.FormatInt(profileID, 10) + "/activityTypes"

	var defaults []GearDefault
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

func (s *gearService) SetGearDefault(ctx context.Context, activityTypeID int64, uuid string, defaultGear bool) error {
	route := "/gear-service/gear/" + uuid + "/activityType/" + strconv.FormatInt(activityTypeID, 10)

	query := url.Values{"defaultGear": {strconv.FormatBool(defaultGear)}}

	return s.client.do(ctx, http.MethodPut, route, query, nil, nil)
}
