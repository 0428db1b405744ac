package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/goalpace/internal/model"
)

// AggregateEarnings splits earnings in [start, end] by goal kind and by goal.
// Goals are sorted by earnings descending; kinds follow a fixed order.
// Entries that reference no known goal are ignored.
func AggregateEarnings(goals []model.Goal, entries []model.Entry, start, end time.Time) model.EarningsBreakdown {
	filtered := FilterByRange(entries, start, end)

	byID := make(map[string]model.Goal, len(goals))
	for _, g := range goals {
		byID[g.Base().ID] = g
	}

	type acc struct {
		earned  decimal.Decimal
		units   float64
		entries int
	}
	perGoal := make(map[string]*acc, len(goals))
	total := decimal.Zero

	for _, e := range filtered {
		g, ok := byID[e.GoalID]
		if !ok {
			continue
		}
		a, ok := perGoal[e.GoalID]
		if !ok {
			a = &acc{earned: decimal.Zero}
			perGoal[e.GoalID] = a
		}
		v := g.Convert(e.Amount)
		a.earned = a.earned.Add(v)
		a.units += e.Amount
		a.entries++
		total = total.Add(v)
	}

	kinds := map[model.GoalKind]*model.KindEarnings{}
	breakdown := model.EarningsBreakdown{Total: total.InexactFloat64()}

	for _, g := range goals {
		base := g.Base()
		a := perGoal[base.ID]
		if a == nil {
			a = &acc{earned: decimal.Zero}
		}
		earned := a.earned.InexactFloat64()
		breakdown.ByGoal = append(breakdown.ByGoal, model.GoalEarnings{
			GoalID:       base.ID,
			Name:         base.Name,
			Kind:         g.Kind(),
			Earned:       earned,
			Units:        a.units,
			Entries:      a.entries,
			SharePercent: SafeDiv(earned, breakdown.Total) * 100,
		})

		k, ok := kinds[g.Kind()]
		if !ok {
			k = &model.KindEarnings{Kind: g.Kind()}
			kinds[g.Kind()] = k
		}
		k.Goals++
		k.Earned += earned
		k.Entries += a.entries
	}

	sort.SliceStable(breakdown.ByGoal, func(i, j int) bool {
		return breakdown.ByGoal[i].Earned > breakdown.ByGoal[j].Earned
	})

	for _, kind := range []model.GoalKind{model.KindFixedUnit, model.KindDailyAmount, model.KindPassive} {
		if k, ok := kinds[kind]; ok {
			breakdown.ByKind = append(breakdown.ByKind, *k)
		}
	}
	return breakdown
}
