package catalog_test

import (
	"testing"

	"github.com/o4villegas/gameday-bingo/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPeriodsCatalog(t *testing.T) {
	Convey("Given the periods catalog", t, func() {
		cat := catalog.New(catalog.SchemePeriods)

		Convey("It carries ten events per period", func() {
			So(cat.Scheme(), ShouldEqual, catalog.SchemePeriods)
			So(cat.Size(), ShouldEqual, 50)

			counts := map[catalog.Period]int{}
			for _, ev := range cat.Events() {
				counts[ev.Period]++
			}
			for _, p := range catalog.PeriodsOrder {
				So(counts[p], ShouldEqual, 10)
			}
		})

		Convey("It requires ten picks, two per period", func() {
			So(cat.RequiredPicks(), ShouldEqual, 10)
			So(cat.PerPeriodQuota(), ShouldEqual, 2)
		})

		Convey("Bonus periods are the four quarters, never FG", func() {
			bonus := cat.BonusPeriods()
			So(bonus, ShouldResemble, []catalog.Period{
				catalog.PeriodQ1, catalog.PeriodQ2, catalog.PeriodQ3, catalog.PeriodQ4,
			})
		})

		Convey("Lookup finds known ids and rejects unknown ones", func() {
			ev, ok := cat.Lookup("q1_opening_kick_td")
			So(ok, ShouldBeTrue)
			So(ev.Period, ShouldEqual, catalog.PeriodQ1)

			So(cat.Contains("t4_overtime"), ShouldBeFalse)
			So(cat.Contains("nope"), ShouldBeFalse)
		})

		Convey("Event ids are unique", func() {
			seen := map[string]bool{}
			for _, ev := range cat.Events() {
				So(seen[ev.ID], ShouldBeFalse)
				seen[ev.ID] = true
			}
		})
	})
}

func TestTiersCatalog(t *testing.T) {
	Convey("Given the tiers catalog", t, func() {
		cat := catalog.New(catalog.SchemeTiers)

		Convey("It requires five picks with no per-period quota", func() {
			So(cat.RequiredPicks(), ShouldEqual, 5)
			So(cat.PerPeriodQuota(), ShouldEqual, 0)
		})

		Convey("Every event carries a tier", func() {
			for _, ev := range cat.Events() {
				So(ev.Tier, ShouldNotEqual, catalog.TierNone)
			}
		})

		Convey("Periods-scheme ids are absent", func() {
			So(cat.Contains("q1_opening_kick_td"), ShouldBeFalse)
			So(cat.Contains("t4_overtime"), ShouldBeTrue)
		})
	})
}

func TestValidPeriod(t *testing.T) {
	Convey("ValidPeriod accepts the five game segments only", t, func() {
		for _, p := range []string{"Q1", "Q2", "Q3", "Q4", "FG"} {
			So(catalog.ValidPeriod(p), ShouldBeTrue)
		}
		So(catalog.ValidPeriod("Q5"), ShouldBeFalse)
		So(catalog.ValidPeriod("q1"), ShouldBeFalse)
		So(catalog.ValidPeriod(""), ShouldBeFalse)
	})
}
