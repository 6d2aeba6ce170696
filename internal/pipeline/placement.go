package pipeline

// AutoAdvanceThreshold is the score from which a new application skips the
// intake stage. Fixed policy, not configurable per job.
const AutoAdvanceThreshold = 55

// PlaceInitialStage decides where a new application lands: the first stage,
// or the second one when the score clears AutoAdvanceThreshold and a second
// stage exists. Callers must pass at least one stage; an empty list yields "".
func PlaceInitialStage(score *int, stages Stages) string {
	if len(stages) == 0 {
		return ""
	}
	if score != nil && *score >= AutoAdvanceThreshold && len(stages) > 1 {
		return stages[1]
	}
	return stages[0]
}
