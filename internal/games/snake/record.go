package snake

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Input is a direction change applied before the tick with index Tick.
// Tick counts advanced ticks, so the first tick of a round is 0.
type Input struct {
	Tick      int            `json:"tick"`
	Direction core.Direction `json:"direction"`
}

// Record is everything needed to replay a round: the seed and rules it was
// started with, plus the direction changes the player made.
type Record struct {
	ID            string      `json:"id"`
	Variant       string      `json:"variant"`
	Seed          int64       `json:"seed"`
	Width         int         `json:"width"`
	Height        int         `json:"height"`
	Hazards       int         `json:"hazards"`
	Policy        SpawnPolicy `json:"policy"`
	BlockReversal bool        `json:"block_reversal"`
	Inputs        []Input     `json:"inputs"`
	Ticks         int         `json:"ticks"`
	Cause         Cause       `json:"cause,omitempty"`
	StartedAt     time.Time   `json:"started_at"`
	EndedAt       time.Time   `json:"ended_at,omitzero"`
}

// Finished reports whether the round reached GameOver.
func (r Record) Finished() bool {
	return r.Cause != CauseNone
}

// RecordSaver persists finished rounds. storage.Store implements it.
type RecordSaver interface {
	SaveRecord(rec Record) (string, error)
}

// ErrReplayDiverged is returned when a replay does not end the way the
// record says it did.
var ErrReplayDiverged = errors.New("replay diverged from record")

// Replay rebuilds the round described by rec and returns its final snapshot.
func Replay(rec Record) (Snapshot, error) {
	policy, err := ParseSpawnPolicy(string(rec.Policy))
	if err != nil {
		return Snapshot{}, err
	}

	engine := NewEngine(NewRandomSpawner(rec.Seed, policy), WithBlockReversal(rec.BlockReversal))
	s, err := engine.Initialize(rec.Width, rec.Height, rec.Hazards)
	if err != nil {
		return Snapshot{}, err
	}

	next := 0
	for s.Ticks() < rec.Ticks {
		if s.IsOver() {
			return s.Snapshot(), fmt.Errorf("snake: round ended at tick %d, record has %d: %w",
				s.Ticks(), rec.Ticks, ErrReplayDiverged)
		}
		for next < len(rec.Inputs) && rec.Inputs[next].Tick <= s.Ticks() {
			engine.SetDirection(s, rec.Inputs[next].Direction)
			next++
		}
		engine.Tick(s)
	}

	if s.Cause() != rec.Cause {
		return s.Snapshot(), fmt.Errorf("snake: replay cause %q, record has %q: %w",
			s.Cause(), rec.Cause, ErrReplayDiverged)
	}
	return s.Snapshot(), nil
}
