package premortem

import "fmt"

// riskClass maps a likelihood×impact product in [1,25] to a label.
func riskClass(score int) string {
	switch {
	case score >= 15:
		return "CRITICAL"
	case score >= 9:
		return "HIGH"
	case score >= 4:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// RiskLevelBrief renders a compact risk level like "HIGH (12/25)", or
// "Not Scored" when either dimension is missing.
func RiskLevelBrief(likelihood, impact *int) string {
	if likelihood == nil || impact == nil {
		return "Not Scored"
	}
	score := *likelihood * *impact
	return fmt.Sprintf("%s (%d/25)", riskClass(score), score)
}

// RiskLevelVerbose renders the risk level with its factors, like
// "CRITICAL 25/25 (Likelihood 5/5 × Impact 5/5)".
func RiskLevelVerbose(likelihood, impact *int) string {
	if likelihood == nil || impact == nil {
		return "Not Scored"
	}
	score := *likelihood * *impact
	return fmt.Sprintf("%s %d/25 (Likelihood %d/5 × Impact %d/5)", riskClass(score), score, *likelihood, *impact)
}
