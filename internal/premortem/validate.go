package premortem

import "fmt"

// Validate checks the referential integrity of a merged analysis: assumption
// IDs must be unique, every failure mode must reference an assumption that
// exists, and no assumption may be the root cause of more than one failure
// mode. Violations fail hard; a broken linkage means the model ignored the
// contract and the whole analysis is suspect.
func Validate(a Analysis) error {
	ids := make(map[string]bool, len(a.AssumptionsToKill))
	for _, assumption := range a.AssumptionsToKill {
		if assumption.AssumptionID == "" {
			return fmt.Errorf("assumption %q has no id", assumption.Statement)
		}
		if ids[assumption.AssumptionID] {
			return fmt.Errorf("duplicate assumption id %s", assumption.AssumptionID)
		}
		ids[assumption.AssumptionID] = true
	}

	used := make(map[string]int, len(a.FailureModes))
	for i, fm := range a.FailureModes {
		if !ids[fm.RootCauseID] {
			return fmt.Errorf("failure mode %d (%s) references unknown assumption %q", i+1, fm.Title, fm.RootCauseID)
		}
		if prev, ok := used[fm.RootCauseID]; ok {
			return fmt.Errorf("assumption %s is the root cause of both failure mode %d and %d", fm.RootCauseID, prev, i+1)
		}
		used[fm.RootCauseID] = i + 1
	}
	return nil
}
