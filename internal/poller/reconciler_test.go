package poller_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/o4villegas/gameday-bingo/internal/domain/game"
	"github.com/o4villegas/gameday-bingo/internal/poller"
	. "github.com/smartystreets/goconvey/convey"
)

type brokenState struct{}

func (brokenState) Get(string) (string, bool, error) { return "", false, errors.New("io error") }
func (brokenState) Set(string, string) error         { return errors.New("io error") }
func (brokenState) Delete(string) error              { return errors.New("io error") }

func TestSafeLocalState(t *testing.T) {
	Convey("Given a safe wrapper over broken storage", t, func() {
		s := poller.NewSafe(brokenState{})

		Convey("All operations degrade to misses without panicking", func() {
			s.Set("k", "v")
			v, ok := s.Get("k")
			So(ok, ShouldBeFalse)
			So(v, ShouldEqual, "")
			s.Delete("k")
		})
	})

	Convey("Given a safe wrapper over nil storage", t, func() {
		s := poller.NewSafe(nil)

		Convey("Operations are no-ops", func() {
			s.Set("k", "v")
			_, ok := s.Get("k")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFileState(t *testing.T) {
	Convey("Given a file-backed state", t, func() {
		path := filepath.Join(t.TempDir(), "state.json")
		s := poller.NewFileState(path)

		Convey("Values survive a reopen", func() {
			So(s.Set("name", "Alice"), ShouldBeNil)

			reopened := poller.NewFileState(path)
			v, ok, err := reopened.Get("name")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "Alice")
		})

		Convey("Deleting removes the key", func() {
			So(s.Set("name", "Alice"), ShouldBeNil)
			So(s.Delete("name"), ShouldBeNil)

			_, ok, err := s.Get("name")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestReconciler(t *testing.T) {
	Convey("Given a reconciler with a recorded submission", t, func() {
		r := poller.NewReconciler(poller.NewSafe(poller.NewMemState()))
		r.MarkSubmitted("Alice")

		name, ok := r.Submitted()
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "Alice")

		Convey("A matching player keeps the marker", func() {
			r.Reconcile([]game.Player{{Name: "Alice"}})
			_, ok := r.Submitted()
			So(ok, ShouldBeTrue)
		})

		Convey("A case-different match still keeps the marker", func() {
			r.Reconcile([]game.Player{{Name: "  ALICE "}})
			_, ok := r.Submitted()
			So(ok, ShouldBeTrue)
		})

		Convey("An absent player clears the marker", func() {
			r.Reconcile([]game.Player{{Name: "Bob"}})
			_, ok := r.Submitted()
			So(ok, ShouldBeFalse)
		})

		Convey("An empty server list clears the marker", func() {
			r.Reconcile(nil)
			_, ok := r.Submitted()
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a reconciler with no marker", t, func() {
		r := poller.NewReconciler(poller.NewSafe(poller.NewMemState()))

		Convey("Reconcile is a no-op", func() {
			r.Reconcile(nil)
			_, ok := r.Submitted()
			So(ok, ShouldBeFalse)
		})
	})
}
