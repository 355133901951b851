package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeAnalyzeComponents() string {
	return `Computes the full metric set for every UI component in a front-end codebase.

USE WHEN:
- Reviewing a component's health before modifying it
- Finding components that are hard to test or maintain
- Comparing complexity across a feature area

INTERPRETING RESULTS:
- structural_complexity > 30: component carries too many responsibilities
- coupling_degree > 0.75: tightly bound to other components or globals
- cyclomatic_complexity > 10: many code paths, consider splitting
- cognitive_complexity > 15: hard to follow, flatten nesting
- maintainability_index < 40: strong refactoring candidate (0-100, higher is better)

METRICS RETURNED:
- Per-component: structural complexity, coupling degree, cyclomatic and
  cognitive complexity, maintainability index, composite risk score
- Summary: mean, std dev, P50/P90/P95 for each metric`
}

func describeRankComponents() string {
	return `Ranks UI components by composite risk, combining all five metrics into one score.

USE WHEN:
- Prioritizing refactoring work across a codebase
- Producing a technical-debt shortlist for planning
- Deciding where to focus review attention in a large change

INTERPRETING RESULTS:
- risk_score is in [0,1]; >= 0.6 is high risk, 0.3-0.6 moderate
- Ranking is stable: tied scores order by component identity
- Use the top parameter to limit output to the N riskiest components

METRICS RETURNED:
- Ranked component rows with all five metrics plus risk score
- Distribution summary for the whole run`
}
