package burnout

import "fmt"

type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
)

// Levels lists the buckets from least to most severe.
var Levels = []Level{LevelLow, LevelModerate, LevelHigh, LevelVeryHigh}

func LevelOf(avg float64) Level {
	switch {
	case avg <= 2.0:
		return LevelLow
	case avg <= 2.5:
		return LevelModerate
	case avg <= 3.0:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

type Scores struct {
	Exhaustion         float64 `json:"exhaustion"`
	Disengagement      float64 `json:"disengagement"`
	Overall            float64 `json:"overall"`
	ExhaustionLevel    Level   `json:"exhaustion_level"`
	DisengagementLevel Level   `json:"disengagement_level"`
	OverallLevel       Level   `json:"overall_level"`
}

// ScoreAgreement converts an agreement answer (1 strongly agree .. 4 strongly
// disagree) for question q into a score where higher always means more
// burnout.
func ScoreAgreement(q, agreement int) (int, error) {
	qu, ok := question(q)
	if !ok {
		return 0, fmt.Errorf("unknown question %d", q)
	}
	if agreement < MinAnswer || agreement > MaxAnswer {
		return 0, fmt.Errorf("question %d: answer %d out of range", q, agreement)
	}
	if qu.Positive {
		return agreement, nil
	}
	return MinAnswer + MaxAnswer - agreement, nil
}

// ScoreAgreements converts a full set of agreement answers.
func ScoreAgreements(agreements map[int]int) (map[int]int, error) {
	out := make(map[int]int, len(agreements))
	for q, a := range agreements {
		s, err := ScoreAgreement(q, a)
		if err != nil {
			return nil, err
		}
		out[q] = s
	}
	return out, nil
}

// Complete reports whether answers holds exactly the twelve questions, each
// in range.
func Complete(answers map[int]int) bool {
	if len(answers) != QuestionCount {
		return false
	}
	for q := 1; q <= QuestionCount; q++ {
		a, ok := answers[q]
		if !ok || a < MinAnswer || a > MaxAnswer {
			return false
		}
	}
	return true
}

// Score averages the subscales and the whole inventory. Partial answer sets
// never produce a score.
func Score(answers map[int]int) (Scores, bool) {
	if !Complete(answers) {
		return Scores{}, false
	}
	var sums, counts [2]int
	total := 0
	for _, q := range inventory.Questions {
		a := answers[q.Index]
		i := 0
		if q.Subscale == Disengagement {
			i = 1
		}
		sums[i] += a
		counts[i]++
		total += a
	}
	s := Scores{
		Exhaustion:    float64(sums[0]) / float64(counts[0]),
		Disengagement: float64(sums[1]) / float64(counts[1]),
		Overall:       float64(total) / QuestionCount,
	}
	s.ExhaustionLevel = LevelOf(s.Exhaustion)
	s.DisengagementLevel = LevelOf(s.Disengagement)
	s.OverallLevel = LevelOf(s.Overall)
	return s, true
}
