package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/o4villegas/gameday-bingo/internal/adapters/http/api"
	"github.com/o4villegas/gameday-bingo/internal/adapters/repository"
	service "github.com/o4villegas/gameday-bingo/internal/app"
	"github.com/o4villegas/gameday-bingo/internal/client"
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const testAdminCode = "client-test-code"

func newTestClient(t *testing.T) (*client.Client, string) {
	t.Helper()
	ctx := context.Background()

	svc := service.New(
		service.WithStore(repository.NewMemStore(ctx)),
		service.WithCatalog(catalog.New(catalog.SchemePeriods)),
	)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithAdminCode(testAdminCode)).Register(ctx, mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return client.New(ts.URL, client.WithAdminCode(testAdminCode)), ts.URL
}

func testPicks() []string {
	return []string{
		"q1_opening_kick_td", "q1_first_score_fg",
		"q2_pick_six", "q2_missed_xp",
		"q3_safety", "q3_lead_change",
		"q4_overtime", "q4_onside_kick",
		"fg_gatorade_orange", "fg_margin_3",
	}
}

func TestClient(t *testing.T) {
	Convey("Given a client against a live server", t, func() {
		ctx := context.Background()
		c, baseURL := newTestClient(t)

		Convey("The health endpoint answers", func() {
			So(c.Healthy(ctx), ShouldBeTrue)
		})

		Convey("Submit then Players round-trips a player", func() {
			out, err := c.Submit(ctx, client.SubmitRequest{Name: "Alice", Picks: testPicks()})
			So(err, ShouldBeNil)
			So(out.Success, ShouldBeTrue)
			So(out.Player.TS, ShouldBeGreaterThan, 0)

			players, err := c.Players(ctx)
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 1)
			So(players[0].Name, ShouldEqual, "Alice")
		})

		Convey("A duplicate name surfaces as a 409 APIError", func() {
			_, err := c.Submit(ctx, client.SubmitRequest{Name: "Alice", Picks: testPicks()})
			So(err, ShouldBeNil)

			_, err = c.Submit(ctx, client.SubmitRequest{Name: "alice", Picks: testPicks()})
			So(err, ShouldNotBeNil)
			So(client.StatusOf(err), ShouldEqual, http.StatusConflict)
		})

		Convey("Outcome toggles flow through to the leaderboard", func() {
			_, err := c.Submit(ctx, client.SubmitRequest{Name: "Alice", Picks: testPicks()})
			So(err, ShouldBeNil)

			outcomes, err := c.ToggleOutcome(ctx, "q1_opening_kick_td")
			So(err, ShouldBeNil)
			So(outcomes["q1_opening_kick_td"], ShouldBeTrue)

			ranked, err := c.Leaderboard(ctx)
			So(err, ShouldBeNil)
			So(ranked, ShouldHaveLength, 1)
			So(ranked[0].CorrectCount, ShouldEqual, 1)
		})

		Convey("Lock toggling is reflected in game state", func() {
			locked, err := c.ToggleLock(ctx)
			So(err, ShouldBeNil)
			So(locked, ShouldBeTrue)

			state, err := c.GameState(ctx)
			So(err, ShouldBeNil)
			So(state.Locked, ShouldBeTrue)
		})

		Convey("Admin calls without the code fail with 401", func() {
			unauth := client.New(baseURL)
			err := unauth.Reset(ctx)
			So(client.StatusOf(err), ShouldEqual, http.StatusUnauthorized)
		})

		Convey("Reset clears everything", func() {
			_, err := c.Submit(ctx, client.SubmitRequest{Name: "Alice", Picks: testPicks()})
			So(err, ShouldBeNil)

			So(c.Reset(ctx), ShouldBeNil)

			players, err := c.Players(ctx)
			So(err, ShouldBeNil)
			So(players, ShouldBeEmpty)
		})
	})
}
