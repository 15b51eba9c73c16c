package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/usecase"
	"github.com/flight-data/flight-schedule-collector/test/mock"
	"github.com/flight-data/flight-schedule-collector/test/testutil"
)

// arrivalBatch is what the upstream returns for POM arrivals: the overnight
// PR215 from Manila, its Qantas codeshare alias, and a junk record with no
// usable weekday.
func arrivalBatch(weekday string) []domain.RawFlight {
	return []domain.RawFlight{
		testutil.OvernightRecord(weekday),
		testutil.RawRecord(
			testutil.WithWeekday(weekday),
			testutil.WithAirline("qf", "qantas"),
			testutil.WithFlightNumber("qf399"),
			testutil.WithDeparture("mnl", "23:50"),
			testutil.WithArrival("pom", "06:30"),
			testutil.WithCodeshare("pr", "pr215"),
		),
		testutil.RawRecord(testutil.WithWeekday("")),
	}
}

func TestCollectionPipeline_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flightStore := NewTestStore(t)
	source := mock.NewMockScheduleSource(ctrl)

	cfg := usecase.CollectorConfig{
		Airports:    []string{"POM"},
		Direction:   "arrival",
		DaysAhead:   8,
		CollectDays: 1,
	}
	ctx := context.Background()

	// First collection: flight arrives POM on weekday 5.
	source.EXPECT().
		FetchSchedules(gomock.Any(), domain.ScheduleQuery{
			AirportCode: "POM",
			Direction:   domain.DirectionArrival,
			Date:        FirstTargetDate,
		}).
		Return(arrivalBatch("5"), nil)

	report, err := NewTestCollector(source, flightStore, cfg).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Totals.Retrieved)
	assert.Equal(t, 2, report.Totals.Inserted)
	assert.Equal(t, 1, report.Totals.Skipped)
	assert.Equal(t, 0, report.FailedFetches)

	// The overnight departure is stored under its departure weekday.
	pr215, err := flightStore.FindByIdentity(ctx, domain.FlightIdentity{
		MarketingAirlineIata:  "PR",
		MarketingFlightNumber: "PR215",
		DepIataCode:           "MNL",
		ArrIataCode:           "POM",
		DepScheduledTime:      "23:50",
		QueryType:             "arrival",
	})
	require.NoError(t, err)
	assert.Equal(t, "4", pr215.Weekdays)
	assert.False(t, pr215.IsCodeshare)

	// The codeshare alias has its own row in the same group.
	group, err := flightStore.FindByCodeshareGroup(ctx, "PRPR215")
	require.NoError(t, err)
	require.Len(t, group, 2)

	// Second collection a week later: same flight seen on weekday 6.
	source.EXPECT().
		FetchSchedules(gomock.Any(), gomock.Any()).
		Return(arrivalBatch("6"), nil)

	report, err = NewTestCollector(source, flightStore, cfg).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Totals.Inserted)
	assert.Equal(t, 2, report.Totals.Extended)

	pr215, err = flightStore.FindByIdentity(ctx, pr215.Identity())
	require.NoError(t, err)
	assert.Equal(t, "4,5", pr215.Weekdays)

	// Third collection replays weekday 6: the run converges.
	source.EXPECT().
		FetchSchedules(gomock.Any(), gomock.Any()).
		Return(arrivalBatch("6"), nil)

	report, err = NewTestCollector(source, flightStore, cfg).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Totals.Stored())
	assert.Equal(t, 2, report.Totals.Duplicates)

	count, err := flightStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCollectionPipeline_UpstreamFailureIsPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flightStore := NewTestStore(t)
	source := mock.NewMockScheduleSource(ctrl)

	source.EXPECT().
		FetchSchedules(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q domain.ScheduleQuery) ([]domain.RawFlight, error) {
			if q.AirportCode == "MNL" {
				return nil, domain.NewRetryableSourceError("MNL", assert.AnError)
			}
			return arrivalBatch("5"), nil
		}).
		Times(2)

	report, err := NewTestCollector(source, flightStore, usecase.CollectorConfig{
		Airports:    []string{"MNL", "POM"},
		Direction:   "arrival",
		DaysAhead:   8,
		CollectDays: 1,
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.FailedFetches)
	assert.Equal(t, 2, report.Totals.Inserted)
}

func TestSearchAPI_OverCollectedStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flightStore := NewTestStore(t)
	source := mock.NewMockScheduleSource(ctrl)
	source.EXPECT().
		FetchSchedules(gomock.Any(), gomock.Any()).
		Return(arrivalBatch("5"), nil)

	_, err := NewTestCollector(source, flightStore, usecase.CollectorConfig{
		Airports:    []string{"POM"},
		Direction:   "arrival",
		DaysAhead:   8,
		CollectDays: 1,
	}).Run(context.Background())
	require.NoError(t, err)

	server := NewTestServer(flightStore)

	t.Run("search by route", func(t *testing.T) {
		rec := server.Get("/api/v1/flights?origin=mnl&destination=pom")
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Success bool `json:"success"`
			Data    struct {
				Count   int             `json:"count"`
				Flights []domain.Flight `json:"flights"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

		assert.True(t, envelope.Success)
		assert.Equal(t, 2, envelope.Data.Count)
	})

	t.Run("codeshare group", func(t *testing.T) {
		rec := server.Get("/api/v1/flights/codeshare-group?airline=PR&flight_number=PR215")
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data struct {
				Count int `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, 2, envelope.Data.Count)
	})

	t.Run("route summary", func(t *testing.T) {
		rec := server.Get("/api/v1/routes/MNL/POM/summary")
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data usecase.RouteSummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

		assert.Equal(t, "MNL-POM", envelope.Data.Route)
		assert.Equal(t, 2, envelope.Data.Flights)
		assert.Equal(t, []string{"PR", "QF"}, envelope.Data.Airlines)
		assert.Equal(t, []string{"4"}, envelope.Data.WeekdayPatterns)
	})

	t.Run("collection summary", func(t *testing.T) {
		rec := server.Get("/api/v1/flights/summary?airport=POM")
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data domain.StoreSummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, int64(2), envelope.Data.TotalFlights)
	})
}
