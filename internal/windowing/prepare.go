package windowing

import "github.com/anthropics/anthropic-sdk-go"

// Stats summarizes the result of window preparation.
type Stats struct {
	Total            int  // estimated tokens for included groups
	Budget           int  // the input budget used (0 = unlimited)
	IncludedGroups   int  // groups included in the window
	SkippedGroups    int  // groups dropped from the front
	OverBudgetNewest bool // the newest group alone exceeds the budget
}

// PrepareSendWindow returns a suffix of msgs (oldest to newest) that fits
// within budget without splitting groups. A budget <= 0 disables windowing
// and returns the full conversation; sessions short enough to fit are the
// common case, so unlimited is the default.
func PrepareSendWindow(msgs []anthropic.MessageParam, budget int, c TokenCounter) ([]anthropic.MessageParam, Stats) {
	if len(msgs) == 0 {
		return nil, Stats{Budget: budget}
	}

	groups := GroupBlocks(msgs)

	if budget <= 0 {
		total := 0
		for _, g := range groups {
			total += c.CountGroup(g, msgs)
		}
		return msgs, Stats{Total: total, IncludedGroups: len(groups)}
	}

	// Walk groups newest to oldest, including whole groups while they fit.
	total := 0
	included := 0
	startIdx := len(groups)

	for gi := len(groups) - 1; gi >= 0; gi-- {
		cost := c.CountGroup(groups[gi], msgs)

		if included == 0 && cost > budget {
			vlogf("reason=over_budget_newest_group budget=%d cost=%d", budget, cost)
			return nil, Stats{
				Budget:           budget,
				SkippedGroups:    len(groups),
				OverBudgetNewest: true,
			}
		}
		if total+cost > budget {
			break
		}
		total += cost
		included++
		startIdx = gi
	}

	if included == 0 {
		return nil, Stats{Budget: budget, SkippedGroups: len(groups)}
	}

	window := msgs[groups[startIdx].Start:]
	return window, Stats{
		Total:          total,
		Budget:         budget,
		IncludedGroups: included,
		SkippedGroups:  len(groups) - included,
	}
}
