package domain

// Stage is one phase of answering a query. StageIdle is both the
// initial and the terminal state; a run deterministically visits
// parse, retrieve, evaluate, render and returns to idle.
type Stage string

const (
	StageIdle     Stage = "idle"
	StageParse    Stage = "parse"
	StageRetrieve Stage = "retrieve"
	StageEvaluate Stage = "evaluate"
	StageRender   Stage = "render"
)

// RunStages lists the stages a query run visits, in order, idle
// excluded.
func RunStages() []Stage {
	return []Stage{StageParse, StageRetrieve, StageEvaluate, StageRender}
}

// Next returns the stage that follows s in a run. Render and idle both
// advance to idle.
func (s Stage) Next() Stage {
	switch s {
	case StageIdle:
		return StageParse
	case StageParse:
		return StageRetrieve
	case StageRetrieve:
		return StageEvaluate
	case StageEvaluate:
		return StageRender
	default:
		return StageIdle
	}
}

func (s Stage) Valid() bool {
	switch s {
	case StageIdle, StageParse, StageRetrieve, StageEvaluate, StageRender:
		return true
	}
	return false
}
