package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	officerGeoKey      = "officer_locations"
	officerSeenPrefix  = "officer_seen:"
	officerActiveAfter = 5 * time.Minute
)

// OfficerPosition is a live officer marker.
type OfficerPosition struct {
	OfficerID uuid.UUID `json:"officerId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	// Distance in km, set only on Nearby results.
	Distance float64 `json:"distance,omitempty"`
}

// LocationStore tracks live officer positions. Positions are transient;
// officers drop out of Active once they stop reporting.
type LocationStore interface {
	Update(ctx context.Context, officerID uuid.UUID, lat, lng float64) error
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]OfficerPosition, error)
	Active(ctx context.Context) ([]OfficerPosition, error)
}

type redisLocationStore struct {
	client *redis.Client
}

func NewLocationStore(client *redis.Client) LocationStore {
	return &redisLocationStore{client: client}
}

func (s *redisLocationStore) Update(ctx context.Context, officerID uuid.UUID, lat, lng float64) error {
	if err := s.client.GeoAdd(ctx, officerGeoKey, &redis.GeoLocation{
		Name:      officerID.String(),
		Latitude:  lat,
		Longitude: lng,
	}).Err(); err != nil {
		return err
	}
	// Freshness marker; Active filters on it.
	return s.client.Set(ctx, officerSeenPrefix+officerID.String(), time.Now().Unix(), officerActiveAfter).Err()
}

func (s *redisLocationStore) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]OfficerPosition, error) {
	locations, err := s.client.GeoSearchLocation(ctx, officerGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Latitude:   lat,
			Longitude:  lng,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		return nil, err
	}

	return s.filterFresh(ctx, locations)
}

func (s *redisLocationStore) Active(ctx context.Context) ([]OfficerPosition, error) {
	// A wide search centered on the origin covers the whole map; freshness
	// filtering does the real work.
	locations, err := s.client.GeoSearchLocation(ctx, officerGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Latitude:   0,
			Longitude:  0,
			Radius:     20037, // half the Earth's circumference in km
			RadiusUnit: "km",
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		return nil, err
	}

	return s.filterFresh(ctx, locations)
}

func (s *redisLocationStore) filterFresh(ctx context.Context, locations []redis.GeoLocation) ([]OfficerPosition, error) {
	positions := make([]OfficerPosition, 0, len(locations))
	for _, loc := range locations {
		officerID, err := uuid.Parse(loc.Name)
		if err != nil {
			continue
		}
		exists, err := s.client.Exists(ctx, officerSeenPrefix+loc.Name).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			continue
		}
		positions = append(positions, OfficerPosition{
			OfficerID: officerID,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Distance:  loc.Dist,
		})
	}
	return positions, nil
}
