package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"github.com/jvmedeiros/gym-checkin-api/internal/feed"
	"github.com/jvmedeiros/gym-checkin-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedHandler_BroadcastsCheckIns(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, userToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, adminToken := testutil.NewUserBuilder().
		WithRole(domain.RoleAdmin).
		BuildAndAuthenticate(t, ts)

	gym := testutil.NewGymBuilder().
		WithCoordinates(-23.1782073, -45.8184834).
		Build(t, ts.DB.DB)

	// Members cannot subscribe.
	_, resp, err := websocket.DefaultDialer.Dial(ts.FeedURL(userToken), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admins can.
	conn, _, err := websocket.DefaultDialer.Dial(ts.FeedURL(adminToken), nil)
	require.NoError(t, err)
	defer conn.Close()

	// A check-in through the API shows up on the feed.
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
		ts.APIURL("/gyms/"+gym.ID.String()+"/check-ins"),
		map[string]float64{"latitude": -23.1782073, "longitude": -45.8184834},
		userToken)
	httpResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer httpResp.Body.Close()
	require.Equal(t, http.StatusCreated, httpResp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var event feed.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, feed.EventCheckInCreated, event.Type)
	assert.Equal(t, user.ID, event.UserID)
	assert.Equal(t, gym.ID, event.GymID)
}
