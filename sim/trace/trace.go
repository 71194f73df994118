package trace

// TraceLevel controls the verbosity of day tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions captures tier transitions and exhaustion only.
	TraceLevelTransitions TraceLevel = "transitions"
	// TraceLevelDays captures every day in addition to transitions.
	TraceLevelDays TraceLevel = "days"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	TraceLevelDays:        true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a simulation run.
type SimulationTrace struct {
	Config      TraceConfig
	Days        []DayRecord
	Transitions []TransitionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Days:        make([]DayRecord, 0),
		Transitions: make([]TransitionRecord, 0),
	}
}

// RecordDay appends a day record when the level is TraceLevelDays.
func (st *SimulationTrace) RecordDay(record DayRecord) {
	if st.Config.Level != TraceLevelDays {
		return
	}
	st.Days = append(st.Days, record)
}

// RecordTransition appends a transition record unless tracing is disabled.
func (st *SimulationTrace) RecordTransition(record TransitionRecord) {
	if st.Config.Level == TraceLevelNone || st.Config.Level == "" {
		return
	}
	st.Transitions = append(st.Transitions, record)
}

// Reset drops all recorded data and keeps the configuration.
func (st *SimulationTrace) Reset() {
	st.Days = st.Days[:0]
	st.Transitions = st.Transitions[:0]
}
