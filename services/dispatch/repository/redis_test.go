package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/constants"
	"github.com/gocab/gocab/internal/pkg/database"
	"github.com/gocab/gocab/internal/pkg/models"
)

func setupRedisLocatorTest(t *testing.T) (*RedisLocator, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	locator := NewRedisLocator(database.NewRedisClientFromConn(client), 0)
	return locator, mock
}

func TestRedisLocator_UpdateLocation(t *testing.T) {
	locator, mock := setupRedisLocatorTest(t)

	mock.ExpectGeoAdd(constants.KeyCaptainGeo, &redis.GeoLocation{
		Longitude: 77.1000,
		Latitude:  28.7000,
		Name:      "captain-1",
	}).SetVal(1)

	err := locator.UpdateLocation(context.Background(), "captain-1", models.Coordinate{
		Latitude:  28.7000,
		Longitude: 77.1000,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocator_UpdateLocation_StoreUnavailable(t *testing.T) {
	locator, mock := setupRedisLocatorTest(t)

	mock.ExpectGeoAdd(constants.KeyCaptainGeo, &redis.GeoLocation{
		Longitude: 77.1000,
		Latitude:  28.7000,
		Name:      "captain-1",
	}).SetErr(errors.New("connection refused"))

	err := locator.UpdateLocation(context.Background(), "captain-1", models.Coordinate{
		Latitude:  28.7000,
		Longitude: 77.1000,
	})

	assert.ErrorIs(t, err, apperrors.ErrDependencyUnavailable)
}

func TestRedisLocator_Within(t *testing.T) {
	locator, mock := setupRedisLocatorTest(t)

	mock.ExpectGeoRadius(constants.KeyCaptainGeo, 77.1025, 28.7041, &redis.GeoRadiusQuery{
		Radius:    1.0,
		Unit:      "km",
		WithCoord: true,
		Sort:      "ASC",
	}).SetVal([]redis.GeoLocation{
		// Store returns distance order; the locator re-sorts by ID.
		{Name: "captain-b", Longitude: 77.1024, Latitude: 28.7040},
		{Name: "captain-a", Longitude: 77.1000, Latitude: 28.7000},
	})

	ids, err := locator.Within(context.Background(), models.Coordinate{
		Latitude:  28.7041,
		Longitude: 77.1025,
	}, 1.0)

	require.NoError(t, err)
	assert.Equal(t, []string{"captain-a", "captain-b"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocator_Within_Empty(t *testing.T) {
	locator, mock := setupRedisLocatorTest(t)

	mock.ExpectGeoRadius(constants.KeyCaptainGeo, 77.1025, 28.7041, &redis.GeoRadiusQuery{
		Radius:    0.1,
		Unit:      "km",
		WithCoord: true,
		Sort:      "ASC",
	}).SetVal([]redis.GeoLocation{})

	ids, err := locator.Within(context.Background(), models.Coordinate{
		Latitude:  28.7041,
		Longitude: 77.1025,
	}, 0.1)

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisLocator_Within_StoreUnavailable(t *testing.T) {
	locator, mock := setupRedisLocatorTest(t)

	mock.ExpectGeoRadius(constants.KeyCaptainGeo, 77.1025, 28.7041, &redis.GeoRadiusQuery{
		Radius:    1.0,
		Unit:      "km",
		WithCoord: true,
		Sort:      "ASC",
	}).SetErr(errors.New("connection refused"))

	_, err := locator.Within(context.Background(), models.Coordinate{
		Latitude:  28.7041,
		Longitude: 77.1025,
	}, 1.0)

	assert.ErrorIs(t, err, apperrors.ErrDependencyUnavailable)
}

func TestRedisLocator_Remove(t *testing.T) {
	locator, mock := setupRedisLocatorTest(t)

	mock.ExpectZRem(constants.KeyCaptainGeo, "captain-1").SetVal(1)

	err := locator.Remove(context.Background(), "captain-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
