package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/o4villegas/gameday-bingo/internal/adapters/http/api"
	"github.com/o4villegas/gameday-bingo/internal/adapters/repository"
	service "github.com/o4villegas/gameday-bingo/internal/app"
	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const testAdminCode = "test-admin-code"

func newTestServer(t *testing.T) *httptest.Server {
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
	return ts
}

func submitBody(name string) []byte {
	body, _ := json.Marshal(map[string]any{
		"name": name,
		"picks": []string{
			"q1_opening_kick_td", "q1_first_score_fg",
			"q2_pick_six", "q2_missed_xp",
			"q3_safety", "q3_lead_change",
			"q4_overtime", "q4_onside_kick",
			"fg_gatorade_orange", "fg_margin_3",
		},
		"tiebreaker": "42",
	})
	return body
}

func doJSON(t *testing.T, method, url string, body []byte, admin bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("X-Admin-Code", testAdminCode)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestPlayersEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		Convey("GET /api/players starts as an empty array", func() {
			resp := doJSON(t, http.MethodGet, ts.URL+"/api/players", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var players []game.Player
			So(json.NewDecoder(resp.Body).Decode(&players), ShouldBeNil)
			So(players, ShouldBeEmpty)
		})

		Convey("POST /api/players with a valid body returns 201", func() {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/players", submitBody("Alice"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			var out struct {
				Success bool        `json:"success"`
				Player  game.Player `json:"player"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Success, ShouldBeTrue)
			So(out.Player.Name, ShouldEqual, "Alice")
			So(out.Player.TS, ShouldBeGreaterThan, 0)
		})

		Convey("POST /api/players without a JSON content type returns 415", func() {
			req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/players", bytes.NewReader(submitBody("Alice")))
			req.Header.Set("Content-Type", "text/plain")
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusUnsupportedMediaType)
		})

		Convey("POST /api/players with malformed JSON returns 400", func() {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/players", []byte("{not json"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("POST /api/players with the wrong pick count returns 400", func() {
			body, _ := json.Marshal(map[string]any{
				"name":  "Alice",
				"picks": []string{"q1_opening_kick_td"},
			})
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/players", body, false)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)

			var out struct {
				Error string `json:"error"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Error, ShouldEqual, "Exactly 10 picks required")
		})

		Convey("Submitting a duplicate name returns 409", func() {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/players", submitBody("Alice"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			resp = doJSON(t, http.MethodPost, ts.URL+"/api/players", submitBody("ALICE"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusConflict)

			var out struct {
				Error string `json:"error"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Error, ShouldEqual, "Name already taken")
		})

		Convey("Submitting while locked returns 403", func() {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/lock", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			resp = doJSON(t, http.MethodPost, ts.URL+"/api/players", submitBody("Bob"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusForbidden)

			var out struct {
				Error string `json:"error"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Error, ShouldEqual, "Submissions are closed")
		})

		Convey("DELETE /api/players/{name} requires the admin code", func() {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/players", submitBody("Alice"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			resp = doJSON(t, http.MethodDelete, ts.URL+"/api/players/Alice", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusUnauthorized)

			resp = doJSON(t, http.MethodDelete, ts.URL+"/api/players/Alice", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("DELETE /api/players/{name} is a no-op for unknown names", func() {
			resp := doJSON(t, http.MethodDelete, ts.URL+"/api/players/Nobody", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var out struct {
				Success bool `json:"success"`
			}
			So(json.NewDecoder(resp.Body).Decode(&out), ShouldBeNil)
			So(out.Success, ShouldBeTrue)
		})
	})
}

func TestEventsAndAdminEndpoints(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		Convey("GET /api/events starts as an empty map", func() {
			resp := doJSON(t, http.MethodGet, ts.URL+"/api/events", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			outcomes := game.Outcomes{}
			So(json.NewDecoder(resp.Body).Decode(&outcomes), ShouldBeNil)
			So(outcomes, ShouldBeEmpty)
		})

		Convey("PUT /api/events/{id} toggles and returns the full map", func() {
			resp := doJSON(t, http.MethodPut, ts.URL+"/api/events/q2_pick_six", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			outcomes := game.Outcomes{}
			So(json.NewDecoder(resp.Body).Decode(&outcomes), ShouldBeNil)
			So(outcomes["q2_pick_six"], ShouldBeTrue)
		})

		Convey("PUT /api/events/{id} rejects unknown ids with 400", func() {
			resp := doJSON(t, http.MethodPut, ts.URL+"/api/events/q9_bogus", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("PUT /api/events/{id} without the admin code returns 401", func() {
			resp := doJSON(t, http.MethodPut, ts.URL+"/api/events/q2_pick_six", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("GET /api/game-state reflects the lock toggle", func() {
			resp := doJSON(t, http.MethodGet, ts.URL+"/api/game-state", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var state game.State
			So(json.NewDecoder(resp.Body).Decode(&state), ShouldBeNil)
			So(state.Locked, ShouldBeFalse)

			resp = doJSON(t, http.MethodPost, ts.URL+"/api/lock", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			resp = doJSON(t, http.MethodGet, ts.URL+"/api/game-state", nil, false)
			So(json.NewDecoder(resp.Body).Decode(&state), ShouldBeNil)
			So(state.Locked, ShouldBeTrue)
		})

		Convey("POST /api/reset clears players and outcomes", func() {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/players", submitBody("Alice"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)
			resp = doJSON(t, http.MethodPut, ts.URL+"/api/events/q2_pick_six", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			resp = doJSON(t, http.MethodPost, ts.URL+"/api/reset", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			resp = doJSON(t, http.MethodGet, ts.URL+"/api/players", nil, false)
			var players []game.Player
			So(json.NewDecoder(resp.Body).Decode(&players), ShouldBeNil)
			So(players, ShouldBeEmpty)

			resp = doJSON(t, http.MethodGet, ts.URL+"/api/events", nil, false)
			outcomes := game.Outcomes{}
			So(json.NewDecoder(resp.Body).Decode(&outcomes), ShouldBeNil)
			So(outcomes, ShouldBeEmpty)
		})

		Convey("GET /api/leaderboard ranks scored players", func() {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/players", submitBody("Alice"), false)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)
			resp = doJSON(t, http.MethodPut, ts.URL+"/api/events/q1_opening_kick_td", nil, true)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			resp = doJSON(t, http.MethodGet, ts.URL+"/api/leaderboard", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var ranked []game.ScoredPlayer
			So(json.NewDecoder(resp.Body).Decode(&ranked), ShouldBeNil)
			So(ranked, ShouldHaveLength, 1)
			So(ranked[0].CorrectCount, ShouldEqual, 1)
			So(ranked[0].Rank, ShouldNotBeNil)
			So(*ranked[0].Rank, ShouldEqual, 1)
			So(ranked[0].TabDiscount, ShouldEqual, 20)
		})

		Convey("GET /healthz serves Prometheus metrics", func() {
			resp := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("GET /stats reports service statistics", func() {
			resp := doJSON(t, http.MethodGet, ts.URL+"/stats", nil, false)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var stats map[string]any
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats["scheme"], ShouldEqual, "periods")
		})
	})
}
