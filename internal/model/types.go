package model

// TimestampLayout is the fixed-width UTC layout used for CreatedAtUTC so that
// stored timestamps order the same as text and as time.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one complete evolution run.
type RunRecord struct {
	VersionedRecord
	ID             string   `json:"id"`
	CreatedAtUTC   string   `json:"created_at_utc"`
	Seed           int64    `json:"seed"`
	Rounds         int      `json:"rounds"`
	Repetitions    int      `json:"repetitions"`
	PretrainRounds int      `json:"pretrain_rounds"`
	ScoreWeight    float64  `json:"score_weight"`
	WinWeight      float64  `json:"win_weight"`
	Roster         []string `json:"roster"`
	Survivor       string   `json:"survivor"`
	Generations    int      `json:"generations"`

	// SurvivorParameters is the learned state of a surviving learner, empty
	// when a reactive strategy survives.
	SurvivorParameters []float64 `json:"survivor_parameters,omitempty"`
}

// StandingRecord is one entrant's ledger line at the end of a generation.
type StandingRecord struct {
	EntrantID string  `json:"entrant_id"`
	Name      string  `json:"name"`
	Score     int64   `json:"score"`
	Wins      int64   `json:"wins"`
	Fitness   float64 `json:"fitness"`
	Learner   bool    `json:"learner"`
}

// GenerationRecord is the persisted report of one generation.
type GenerationRecord struct {
	VersionedRecord
	Generation     int              `json:"generation"`
	Standings      []StandingRecord `json:"standings"`
	EliminatedID   string           `json:"eliminated_id"`
	EliminatedName string           `json:"eliminated_name"`
}

// PretrainRecord is one learner's result against one panel opponent during
// warm-up.
type PretrainRecord struct {
	VersionedRecord
	EntrantID     string `json:"entrant_id"`
	Name          string `json:"name"`
	Opponent      string `json:"opponent"`
	Score         int    `json:"score"`
	OpponentScore int    `json:"opponent_score"`
}
