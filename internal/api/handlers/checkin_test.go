package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"github.com/jvmedeiros/gym-checkin-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	gym := testutil.NewGymBuilder().
		WithCoordinates(-23.1782073, -45.8184834).
		Build(t, ts.DB.DB)
	farGym := testutil.NewGymBuilder().
		WithCoordinates(-23.1764729, -45.82812).
		Build(t, ts.DB.DB)

	atGym := map[string]float64{"latitude": -23.1782073, "longitude": -45.8184834}

	t.Run("requires authentication", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/gyms/"+gym.ID.String()+"/check-ins"), atGym, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("unknown gym returns 404", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/gyms/"+uuid.New().String()+"/check-ins"), atGym, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("distant gym returns 403", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/gyms/"+farGym.ID.String()+"/check-ins"), atGym, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Too far")
	})

	t.Run("out-of-range coordinates return 400", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/gyms/"+gym.ID.String()+"/check-ins"),
			map[string]float64{"latitude": 91, "longitude": 0}, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("succeeds once then conflicts the same day", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/gyms/"+gym.ID.String()+"/check-ins"), atGym, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var checkIn domain.CheckIn
		testutil.AssertJSONResponse(t, resp, &checkIn)
		assert.Equal(t, gym.ID, checkIn.GymID)
		assert.Nil(t, checkIn.ValidatedAt)

		req = testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/gyms/"+gym.ID.String()+"/check-ins"), atGym, token)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})
}

func TestCheckInHandler_Validate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	member, memberToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, adminToken := testutil.NewUserBuilder().
		WithRole(domain.RoleAdmin).
		BuildAndAuthenticate(t, ts)

	gym := testutil.NewGymBuilder().Build(t, ts.DB.DB)
	checkIn := testutil.NewCheckInBuilder(member.ID, gym.ID).Build(t, ts.DB.DB)

	t.Run("member is forbidden", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPatch,
			ts.APIURL("/check-ins/"+checkIn.ID.String()+"/validate"), nil, memberToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("admin validates once", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPatch,
			ts.APIURL("/check-ins/"+checkIn.ID.String()+"/validate"), nil, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var validated domain.CheckIn
		testutil.AssertJSONResponse(t, resp, &validated)
		assert.NotNil(t, validated.ValidatedAt)

		// A second validation conflicts.
		req = testutil.CreateAuthenticatedRequest(t, http.MethodPatch,
			ts.APIURL("/check-ins/"+checkIn.ID.String()+"/validate"), nil, adminToken)
		resp, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})

	t.Run("late validation is rejected", func(t *testing.T) {
		stale := testutil.NewCheckInBuilder(member.ID, gym.ID).
			WithCreatedAt(time.Now().Add(-48 * time.Hour)).
			Build(t, ts.DB.DB)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodPatch,
			ts.APIURL("/check-ins/"+stale.ID.String()+"/validate"), nil, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	})

	t.Run("unknown check-in returns 404", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPatch,
			ts.APIURL("/check-ins/"+uuid.New().String()+"/validate"), nil, adminToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestCheckInHandler_HistoryAndMetrics(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	gym := testutil.NewGymBuilder().Build(t, ts.DB.DB)

	for i := 0; i < 3; i++ {
		testutil.NewCheckInBuilder(user.ID, gym.ID).
			WithCreatedAt(time.Date(2022, 1, 1+i, 8, 0, 0, 0, time.UTC)).
			Build(t, ts.DB.DB)
	}

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet,
		ts.APIURL("/check-ins/history"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var history []domain.CheckIn
	testutil.AssertJSONResponse(t, resp, &history)
	require.Len(t, history, 3)
	assert.NotNil(t, history[0].Gym)

	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet,
		ts.APIURL("/check-ins/metrics"), nil, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var metrics map[string]int64
	testutil.AssertJSONResponse(t, resp, &metrics)
	assert.EqualValues(t, 3, metrics["checkInsCount"])
}
