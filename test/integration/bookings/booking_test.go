package integrationtests

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"venuebook/pkg/model"
	"venuebook/test/integration/testutil"
)

// The full booking flow against a running stack: register, browse venues,
// check availability, submit a request and have an admin decide it.
// Requires TEST_SERVER_URL (and a seeded database); skipped otherwise.

func TestBookingFlow(t *testing.T) {
	if os.Getenv("TEST_SERVER_URL") == "" {
		t.Skip("TEST_SERVER_URL not set; skipping integration test")
	}

	env := testutil.NewTestEnv()
	client := testutil.NewClient(env.ServerURL)
	client.WaitForHealthy(t, testutil.DefaultHealthCheckTimeout)

	userToken := registerAndLogin(t, client, "Integration User", uniqueEmail("user"))
	adminToken := login(t, client, "admin@example.com", "password")

	venue := firstVenue(t, client)

	// Availability for the next bookable weekday.
	date := testutil.NextBookableDate().Format(model.DateLayout)
	resp := client.GET(t, fmt.Sprintf("/api/v1/venues/id/%s/availability?date=%s", venue.ID, date))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertContains(t, resp, `"selectable":true`)

	// Submit a request as a regular user.
	payload := testutil.NewBookingBuilder(venue.ID).WithDate(date).Build()
	resp = client.POSTWithHeaders(t, "/api/v1/bookings", payload, bearer(userToken))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	booking := decodeBooking(t, resp)
	if booking.Status != model.StatusPending {
		t.Fatalf("expected pending status, got %s", booking.Status)
	}

	// Users cannot decide; admins can.
	decision := map[string]any{"decision": "approve"}
	resp = client.POSTWithHeaders(t, "/api/v1/bookings/id/"+booking.ID+"/decision", decision, bearer(userToken))
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	resp = client.POSTWithHeaders(t, "/api/v1/bookings/id/"+booking.ID+"/decision", decision, bearer(adminToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	approved := decodeBooking(t, resp)
	if approved.Status != model.StatusApproved {
		t.Fatalf("expected approved status, got %s", approved.Status)
	}

	// The slot is now taken: a second request for the same triple conflicts.
	resp = client.POSTWithHeaders(t, "/api/v1/bookings", payload, bearer(userToken))
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	// A decided request is terminal.
	resp = client.POSTWithHeaders(t, "/api/v1/bookings/id/"+booking.ID+"/decision", decision, bearer(adminToken))
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}

func TestBookingRequiresAuthentication(t *testing.T) {
	if os.Getenv("TEST_SERVER_URL") == "" {
		t.Skip("TEST_SERVER_URL not set; skipping integration test")
	}

	env := testutil.NewTestEnv()
	client := testutil.NewClient(env.ServerURL)
	client.WaitForHealthy(t, testutil.DefaultHealthCheckTimeout)

	venue := firstVenue(t, client)
	payload := testutil.NewBookingBuilder(venue.ID).Build()
	resp := client.POST(t, "/api/v1/bookings", payload)
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

// --- Helpers ---

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s+%d@example.com", prefix, time.Now().UnixNano())
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func registerAndLogin(t *testing.T, client *testutil.Client, name, email string) string {
	t.Helper()
	resp := client.POST(t, "/api/v1/auth/register", testutil.RegisterPayload(name, email, "longenoughpassword"))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	return decodeSession(t, resp)
}

func login(t *testing.T, client *testutil.Client, email, password string) string {
	t.Helper()
	resp := client.POST(t, "/api/v1/auth/login", testutil.LoginPayload(email, password))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	return decodeSession(t, resp)
}

func decodeSession(t *testing.T, resp *testutil.Response) string {
	t.Helper()
	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := resp.UnmarshalJSON(&result); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if result.Data.Token == "" {
		t.Fatal("expected a session token")
	}
	return result.Data.Token
}

func firstVenue(t *testing.T, client *testutil.Client) *model.Venue {
	t.Helper()
	resp := client.GET(t, "/api/v1/venues")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result struct {
		Data []model.Venue `json:"data"`
	}
	if err := resp.UnmarshalJSON(&result); err != nil {
		t.Fatalf("failed to decode venues: %v", err)
	}
	if len(result.Data) == 0 {
		t.Fatal("expected at least one seeded venue")
	}
	return &result.Data[0]
}

func decodeBooking(t *testing.T, resp *testutil.Response) *model.BookingRequest {
	t.Helper()
	var result struct {
		Data model.BookingRequest `json:"data"`
	}
	if err := resp.UnmarshalJSON(&result); err != nil {
		t.Fatalf("failed to decode booking: %v", err)
	}
	return &result.Data
}
