// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package settle

import (
	"math"
	"sort"
	"strconv"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/grid"
	"github.com/danielhkuo/gameday-pool/models"
)

// Answer is one participant's stored answer to one question.
type Answer struct {
	Name string
	Text string
}

// QuestionResult is the settlement outcome for a single question.
// CorrectAnswer is empty while the question is unresolved; Split is the
// rounded per-winner share (0 when there are no winners).
type QuestionResult struct {
	QuestionID    int
	Text          string
	Collected     float64
	CorrectAnswer string
	Winners       []string
	Split         float64
}

// TriviaResult aggregates all question outcomes. Collected counts every
// question's intake whether or not it was resolved; unresolved questions
// pay nobody and their intake feeds the house remainder.
type TriviaResult struct {
	Questions    []QuestionResult
	PayoutByName map[string]float64
	Collected    float64
}

// QuarterOutcome is one quarter of the squares game. WinnerName is empty
// when the quarter is unscored or the winning cell is unclaimed; in
// both cases the quarter share stays with the house.
type QuarterOutcome struct {
	Quarter int
	Home    *int
	Away    *int
	Cell    *models.WinningCell
	Winner  string
	Amount  float64
}

// SquaresResult is the squares-game settlement.
type SquaresResult struct {
	Pot          float64
	QuarterShare float64
	Quarters     [4]QuarterOutcome
	PayoutByName map[string]float64
}

// LedgerEntry is one person's consolidated balance. Net is positive when
// the pool owes them money.
type LedgerEntry struct {
	Name   string
	PaidIn float64
	Owed   float64
	Net    float64
}

// LedgerResult is the final net-balance ledger across both games.
type LedgerResult struct {
	ByPerson       []LedgerEntry
	TotalCollected float64
	TotalOwed      float64
	HouseRemainder float64
}

// Trivia settles every question against the declared correct answers.
// Choice questions pay exact matches; numeric questions pay the
// closest guess by absolute distance. Ties are included and the pot
// splits evenly, rounded to cents at the point of allocation.
//
// Pure function of its inputs; nothing here touches storage.
func Trivia(questions []catalog.Question, correct map[int]string, answers map[int][]Answer) TriviaResult {
	result := TriviaResult{PayoutByName: make(map[string]float64)}

	for _, q := range questions {
		rows := answers[q.ID]
		collected := float64(q.Cost * len(rows))
		declared := correct[q.ID]

		var winners []string
		if declared != "" && len(rows) > 0 {
			winners = questionWinners(q, declared, rows)
		}

		split := 0.0
		if len(winners) > 0 {
			split = round2(collected / float64(len(winners)))
			for _, name := range winners {
				result.PayoutByName[name] += split
			}
		}

		result.Questions = append(result.Questions, QuestionResult{
			QuestionID:    q.ID,
			Text:          q.Text,
			Collected:     collected,
			CorrectAnswer: declared,
			Winners:       winners,
			Split:         split,
		})
		result.Collected += collected
	}

	return result
}

// questionWinners returns the unique, sorted winner names for one
// resolved question.
func questionWinners(q catalog.Question, declared string, rows []Answer) []string {
	set := make(map[string]bool)

	switch q.Kind {
	case catalog.KindNumeric:
		target, err := strconv.Atoi(declared)
		if err != nil {
			// Unparseable declared answer resolves nobody.
			return nil
		}
		best := -1
		dists := make(map[string]int)
		for _, row := range rows {
			value, err := strconv.Atoi(row.Text)
			if err != nil {
				continue
			}
			d := value - target
			if d < 0 {
				d = -d
			}
			if prev, ok := dists[row.Name]; !ok || d < prev {
				dists[row.Name] = d
			}
			if best < 0 || d < best {
				best = d
			}
		}
		for name, d := range dists {
			if d == best {
				set[name] = true
			}
		}

	case catalog.KindChoice:
		for _, row := range rows {
			if row.Text == declared {
				set[row.Name] = true
			}
		}
	}

	if len(set) == 0 {
		return nil
	}
	winners := make([]string, 0, len(set))
	for name := range set {
		winners = append(winners, name)
	}
	sort.Strings(winners)
	return winners
}

// Squares settles the grid game. Each quarter is independent: an
// unscored quarter or an unclaimed winning cell pays nobody, and the
// share is retained by the house rather than redistributed.
//
// Deterministic: the winning cell is a pure function of the board's
// permutations and the quarter's scores.
func Squares(costPerCell int, board grid.Board, claims []grid.Claim) SquaresResult {
	pot := float64(costPerCell * len(claims))
	share := round2(pot / 4)

	byCell := make(map[models.CellRef]grid.Claim, len(claims))
	for _, c := range claims {
		byCell[models.CellRef{Row: c.Row, Col: c.Col}] = c
	}

	result := SquaresResult{
		Pot:          round2(pot),
		QuarterShare: share,
		PayoutByName: make(map[string]float64),
	}

	for q := 0; q < 4; q++ {
		score := board.Scores[q]
		outcome := QuarterOutcome{
			Quarter: q + 1,
			Home:    score.Home,
			Away:    score.Away,
			Amount:  share,
		}

		if score.Home != nil && score.Away != nil {
			homeDigit := *score.Home % 10
			awayDigit := *score.Away % 10
			row := indexOf(board.RowDigits, awayDigit)
			col := indexOf(board.ColDigits, homeDigit)
			if row >= 0 && col >= 0 {
				outcome.Cell = &models.WinningCell{
					Row:       row,
					Col:       col,
					HomeDigit: homeDigit,
					AwayDigit: awayDigit,
				}
				if claim, taken := byCell[models.CellRef{Row: row, Col: col}]; taken {
					outcome.Winner = claim.Name
					result.PayoutByName[claim.Name] += share
				}
			}
		}

		result.Quarters[q] = outcome
	}

	return result
}

// Ledger merges both games into per-person balances. A person is their
// typed display name; there is no stronger identity in this system.
func Ledger(trivia TriviaResult, squares SquaresResult, paidIn map[string]float64) LedgerResult {
	names := make(map[string]bool)
	for name := range paidIn {
		names[name] = true
	}
	for name := range trivia.PayoutByName {
		names[name] = true
	}
	for name := range squares.PayoutByName {
		names[name] = true
	}

	everyone := make([]string, 0, len(names))
	for name := range names {
		everyone = append(everyone, name)
	}
	sort.Strings(everyone)

	result := LedgerResult{
		TotalCollected: round2(trivia.Collected + squares.Pot),
	}
	for _, name := range everyone {
		paid := round2(paidIn[name])
		owed := round2(trivia.PayoutByName[name] + squares.PayoutByName[name])
		result.ByPerson = append(result.ByPerson, LedgerEntry{
			Name:   name,
			PaidIn: paid,
			Owed:   owed,
			Net:    round2(owed - paid),
		})
		result.TotalOwed += owed
	}
	result.TotalOwed = round2(result.TotalOwed)
	result.HouseRemainder = round2(result.TotalCollected - result.TotalOwed)

	return result
}

func indexOf(digits []int, d int) int {
	for i, v := range digits {
		if v == d {
			return i
		}
	}
	return -1
}

// round2 rounds to cents. Splits round at each allocation point, not at
// the end: houseRemainder's sign and size under odd-cent splits depend
// on this.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
