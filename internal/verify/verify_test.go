package verify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	"github.com/o4villegas/gameday-bingo/internal/verify"
	. "github.com/smartystreets/goconvey/convey"
)

func q1Events() []catalog.Event {
	cat := catalog.New(catalog.SchemePeriods)
	var out []catalog.Event
	for _, ev := range cat.Events() {
		if ev.Period == catalog.PeriodQ1 {
			out = append(out, ev)
		}
	}
	return out
}

// chatServer fakes an OpenAI-compatible chat completions endpoint that
// always answers with content.
func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestOpenAIAnalyzer(t *testing.T) {
	Convey("Given an analyzer against a fake completions endpoint", t, func() {
		ctx := context.Background()

		verdicts := map[string]any{
			"events": []map[string]any{
				{"eventId": "q1_opening_kick_td", "occurred": true, "confidence": "high", "reasoning": "kick returned for TD"},
				{"eventId": "q1_no_points", "occurred": false, "confidence": "medium", "reasoning": "both teams scored"},
				{"eventId": "made_up_event", "occurred": true, "confidence": "high", "reasoning": "hallucinated"},
			},
			"summary": "scoring first quarter",
		}
		raw, err := json.Marshal(verdicts)
		So(err, ShouldBeNil)

		Convey("A plain JSON answer parses into verdicts on known events", func() {
			ts := chatServer(t, string(raw), http.StatusOK)
			a := verify.NewOpenAIAnalyzer("key", ts.URL, "test-model")

			result, err := a.VerifyPeriod(ctx, catalog.PeriodQ1, q1Events(), "play by play")
			So(err, ShouldBeNil)
			So(result.Period, ShouldEqual, catalog.PeriodQ1)
			So(result.Status, ShouldEqual, verify.StatusCompleted)
			So(result.Summary, ShouldEqual, "scoring first quarter")
			So(result.ID, ShouldNotBeEmpty)

			// The invented id is dropped.
			So(result.Events, ShouldHaveLength, 2)
			So(result.Events[0].EventID, ShouldEqual, "q1_opening_kick_td")
			So(result.Events[0].Occurred, ShouldBeTrue)
			So(result.Events[0].EventName, ShouldNotBeEmpty)
		})

		Convey("A fenced JSON answer still parses", func() {
			ts := chatServer(t, "```json\n"+string(raw)+"\n```", http.StatusOK)
			a := verify.NewOpenAIAnalyzer("key", ts.URL, "test-model")

			result, err := a.VerifyPeriod(ctx, catalog.PeriodQ1, q1Events(), "play by play")
			So(err, ShouldBeNil)
			So(result.Events, ShouldHaveLength, 2)
		})

		Convey("Non-JSON output fails with ErrBadAnalyzerOutput", func() {
			ts := chatServer(t, "I cannot help with that.", http.StatusOK)
			a := verify.NewOpenAIAnalyzer("key", ts.URL, "test-model")

			_, err := a.VerifyPeriod(ctx, catalog.PeriodQ1, q1Events(), "play by play")
			So(errors.Is(err, verify.ErrBadAnalyzerOutput), ShouldBeTrue)
		})

		Convey("An upstream 500 fails with ErrUpstream", func() {
			ts := chatServer(t, "", http.StatusInternalServerError)
			a := verify.NewOpenAIAnalyzer("key", ts.URL, "test-model")

			_, err := a.VerifyPeriod(ctx, catalog.PeriodQ1, q1Events(), "play by play")
			So(errors.Is(err, verify.ErrUpstream), ShouldBeTrue)
		})

		Convey("A missing API key fails before any request", func() {
			a := verify.NewOpenAIAnalyzer("", "http://localhost:0", "test-model")
			_, err := a.VerifyPeriod(ctx, catalog.PeriodQ1, q1Events(), "play by play")
			So(errors.Is(err, verify.ErrMissingAPIKey), ShouldBeTrue)
		})
	})
}

func TestHTTPSource(t *testing.T) {
	Convey("Given an HTTP game data source", t, func() {
		ctx := context.Background()

		Convey("A healthy feed returns its body", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"drives":[]}`))
			}))
			defer ts.Close()

			src := verify.NewHTTPSource(ts.URL)
			data, err := src.FetchGameData(ctx)
			So(err, ShouldBeNil)
			So(data, ShouldEqual, `{"drives":[]}`)
		})

		Convey("A failing feed maps to ErrUpstream", func() {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer ts.Close()

			src := verify.NewHTTPSource(ts.URL)
			_, err := src.FetchGameData(ctx)
			So(errors.Is(err, verify.ErrUpstream), ShouldBeTrue)
		})

		Convey("An empty URL is not configured", func() {
			src := verify.NewHTTPSource("")
			_, err := src.FetchGameData(ctx)
			So(errors.Is(err, verify.ErrNoSourceConfigured), ShouldBeTrue)
		})
	})
}

func TestApprovable(t *testing.T) {
	Convey("Approvable admits only confident occurred verdicts", t, func() {
		So(verify.Approvable(verify.EventVerification{Occurred: true, Confidence: verify.ConfidenceHigh}), ShouldBeTrue)
		So(verify.Approvable(verify.EventVerification{Occurred: true, Confidence: verify.ConfidenceMedium}), ShouldBeTrue)
		So(verify.Approvable(verify.EventVerification{Occurred: true, Confidence: verify.ConfidenceLow}), ShouldBeFalse)
		So(verify.Approvable(verify.EventVerification{Occurred: false, Confidence: verify.ConfidenceHigh}), ShouldBeFalse)
	})
}
