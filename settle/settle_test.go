// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package settle

import (
	"math"
	"reflect"
	"testing"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/grid"
)

func intp(v int) *int { return &v }

func choiceQuestion(id, cost int) catalog.Question {
	return catalog.Question{
		ID: id, Text: "Coin toss?", Kind: catalog.KindChoice, Cost: cost,
		Options: []string{"Heads", "Tails"},
	}
}

func numericQuestion(id, cost int) catalog.Question {
	return catalog.Question{
		ID: id, Text: "Total points?", Kind: catalog.KindNumeric, Cost: cost,
		Min: 0, Max: 500,
	}
}

func TestTriviaChoiceExactMatch(t *testing.T) {
	questions := []catalog.Question{choiceQuestion(1, 2)}
	answers := map[int][]Answer{
		1: {
			{Name: "Alice", Text: "Heads"},
			{Name: "Bob", Text: "Tails"},
			{Name: "Carol", Text: "Heads"},
		},
	}

	result := Trivia(questions, map[int]string{1: "Heads"}, answers)

	q := result.Questions[0]
	if q.Collected != 6 {
		t.Errorf("Expected collected 6, got %v", q.Collected)
	}
	if !reflect.DeepEqual(q.Winners, []string{"Alice", "Carol"}) {
		t.Errorf("Expected winners [Alice Carol], got %v", q.Winners)
	}
	if q.Split != 3 {
		t.Errorf("Expected split 3, got %v", q.Split)
	}
	if result.PayoutByName["Alice"] != 3 || result.PayoutByName["Carol"] != 3 {
		t.Errorf("Unexpected payouts: %v", result.PayoutByName)
	}
	if result.PayoutByName["Bob"] != 0 {
		t.Errorf("Bob should win nothing, got %v", result.PayoutByName["Bob"])
	}
}

func TestTriviaNumericClosestGuess(t *testing.T) {
	questions := []catalog.Question{numericQuestion(2, 1)}
	answers := map[int][]Answer{
		2: {
			{Name: "Alice", Text: "40"},
			{Name: "Bob", Text: "51"},
			{Name: "Carol", Text: "60"},
		},
	}

	result := Trivia(questions, map[int]string{2: "50"}, answers)

	q := result.Questions[0]
	if !reflect.DeepEqual(q.Winners, []string{"Bob"}) {
		t.Errorf("Expected winner [Bob], got %v", q.Winners)
	}
	if q.Split != 3 {
		t.Errorf("Expected split 3 (whole pot to sole winner), got %v", q.Split)
	}
}

func TestTriviaNumericTieSplits(t *testing.T) {
	questions := []catalog.Question{numericQuestion(2, 1)}
	answers := map[int][]Answer{
		2: {
			{Name: "Alice", Text: "45"},
			{Name: "Bob", Text: "55"},
			{Name: "Carol", Text: "100"},
		},
	}

	result := Trivia(questions, map[int]string{2: "50"}, answers)

	q := result.Questions[0]
	if !reflect.DeepEqual(q.Winners, []string{"Alice", "Bob"}) {
		t.Errorf("Expected winners [Alice Bob], got %v", q.Winners)
	}
	if q.Split != 1.5 {
		t.Errorf("Expected split 1.5, got %v", q.Split)
	}
}

func TestTriviaUnresolvedQuestionPaysNobody(t *testing.T) {
	questions := []catalog.Question{choiceQuestion(1, 2)}
	answers := map[int][]Answer{
		1: {{Name: "Alice", Text: "Heads"}},
	}

	result := Trivia(questions, map[int]string{}, answers)

	q := result.Questions[0]
	if q.Collected != 2 {
		t.Errorf("Unresolved question still collects, got %v", q.Collected)
	}
	if len(q.Winners) != 0 || q.Split != 0 {
		t.Errorf("Unresolved question must pay nobody: %+v", q)
	}
	if len(result.PayoutByName) != 0 {
		t.Errorf("Expected no payouts, got %v", result.PayoutByName)
	}
}

func TestTriviaNoCorrectGuessers(t *testing.T) {
	questions := []catalog.Question{choiceQuestion(1, 2)}
	answers := map[int][]Answer{
		1: {{Name: "Alice", Text: "Tails"}},
	}

	result := Trivia(questions, map[int]string{1: "Heads"}, answers)

	q := result.Questions[0]
	if len(q.Winners) != 0 || q.Split != 0 {
		t.Errorf("No matching guesses must pay nobody: %+v", q)
	}
}

func TestTriviaSplitRoundsAtAllocation(t *testing.T) {
	// 4 dollars across 3 winners: each gets 1.33, the leftover cent
	// stays with the house via the ledger.
	questions := []catalog.Question{choiceQuestion(1, 1)}
	answers := map[int][]Answer{
		1: {
			{Name: "Alice", Text: "Heads"},
			{Name: "Bob", Text: "Heads"},
			{Name: "Carol", Text: "Heads"},
			{Name: "Dave", Text: "Tails"},
		},
	}

	result := Trivia(questions, map[int]string{1: "Heads"}, answers)

	q := result.Questions[0]
	if q.Collected != 4 {
		t.Fatalf("Expected collected 4, got %v", q.Collected)
	}
	if len(q.Winners) != 3 {
		t.Fatalf("Expected three winners, got %v", q.Winners)
	}
	if q.Split != 1.33 {
		t.Fatalf("Expected split 1.33, got %v", q.Split)
	}
	for _, name := range q.Winners {
		if result.PayoutByName[name] != 1.33 {
			t.Errorf("Expected %s payout 1.33, got %v", name, result.PayoutByName[name])
		}
	}
}

func TestTriviaUnparseableDeclaredAnswer(t *testing.T) {
	questions := []catalog.Question{numericQuestion(2, 1)}
	answers := map[int][]Answer{
		2: {{Name: "Alice", Text: "50"}},
	}

	result := Trivia(questions, map[int]string{2: "not a number"}, answers)

	if len(result.Questions[0].Winners) != 0 {
		t.Errorf("Unparseable declared answer must resolve nobody, got %v", result.Questions[0].Winners)
	}
}

func TestTriviaDeterministicWinnerOrder(t *testing.T) {
	questions := []catalog.Question{choiceQuestion(1, 2)}
	answers := map[int][]Answer{
		1: {
			{Name: "Zoe", Text: "Heads"},
			{Name: "Adam", Text: "Heads"},
			{Name: "Mia", Text: "Heads"},
		},
	}

	first := Trivia(questions, map[int]string{1: "Heads"}, answers)
	for i := 0; i < 10; i++ {
		again := Trivia(questions, map[int]string{1: "Heads"}, answers)
		if !reflect.DeepEqual(first, again) {
			t.Fatal("Trivia settlement is not deterministic")
		}
	}
	if !reflect.DeepEqual(first.Questions[0].Winners, []string{"Adam", "Mia", "Zoe"}) {
		t.Errorf("Winners must be sorted, got %v", first.Questions[0].Winners)
	}
}

func testBoard() grid.Board {
	return grid.Board{
		// Identity permutations keep the expected cells easy to read.
		RowDigits: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		ColDigits: []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}
}

func TestSquaresWinningCell(t *testing.T) {
	board := testBoard()
	board.Scores[0] = grid.QuarterScore{Home: intp(14), Away: intp(7)}

	claims := []grid.Claim{
		{Row: 7, Col: 5, SubmissionID: "s1", Name: "Alice"},
		{Row: 0, Col: 0, SubmissionID: "s2", Name: "Bob"},
	}

	result := Squares(4, board, claims)

	if result.Pot != 8 {
		t.Errorf("Expected pot 8, got %v", result.Pot)
	}
	if result.QuarterShare != 2 {
		t.Errorf("Expected quarter share 2, got %v", result.QuarterShare)
	}

	q1 := result.Quarters[0]
	// away digit 7 -> row 7 under identity rows; home digit 4 -> col 5
	// under the reversed column permutation.
	if q1.Cell == nil || q1.Cell.Row != 7 || q1.Cell.Col != 5 {
		t.Fatalf("Unexpected winning cell: %+v", q1.Cell)
	}
	if q1.Winner != "Alice" {
		t.Errorf("Expected Alice to win Q1, got %q", q1.Winner)
	}
	if result.PayoutByName["Alice"] != 2 {
		t.Errorf("Expected Alice payout 2, got %v", result.PayoutByName["Alice"])
	}
}

func TestSquaresUnclaimedCellPaysHouse(t *testing.T) {
	board := testBoard()
	board.Scores[0] = grid.QuarterScore{Home: intp(10), Away: intp(3)}

	claims := []grid.Claim{
		{Row: 0, Col: 0, SubmissionID: "s1", Name: "Alice"},
	}

	result := Squares(4, board, claims)

	q1 := result.Quarters[0]
	if q1.Cell == nil {
		t.Fatal("Scored quarter must name a winning cell")
	}
	if q1.Winner != "" {
		t.Errorf("Unclaimed cell must pay nobody, got winner %q", q1.Winner)
	}
	if len(result.PayoutByName) != 0 {
		t.Errorf("Expected no payouts, got %v", result.PayoutByName)
	}
}

func TestSquaresUnscoredQuarters(t *testing.T) {
	board := testBoard()
	// Only home entered for Q2; Q1, Q3, Q4 untouched.
	board.Scores[1] = grid.QuarterScore{Home: intp(7)}

	result := Squares(4, board, []grid.Claim{{Row: 0, Col: 0, Name: "Alice"}})

	for i, q := range result.Quarters {
		if q.Cell != nil || q.Winner != "" {
			t.Errorf("Quarter %d should be unsettled: %+v", i+1, q)
		}
	}
}

func TestSquaresPotScalesWithClaims(t *testing.T) {
	board := testBoard()

	result := Squares(4, board, nil)
	if result.Pot != 0 || result.QuarterShare != 0 {
		t.Errorf("Empty grid must have zero pot, got %+v", result)
	}

	claims := make([]grid.Claim, 0, 5)
	for i := 0; i < 5; i++ {
		claims = append(claims, grid.Claim{Row: i, Col: i, Name: "Alice"})
	}
	result = Squares(4, board, claims)
	if result.Pot != 20 {
		t.Errorf("Expected pot 20, got %v", result.Pot)
	}
	if result.QuarterShare != 5 {
		t.Errorf("Expected share 5, got %v", result.QuarterShare)
	}
}

func TestSquaresDigitUsesModTen(t *testing.T) {
	board := testBoard()
	board.Scores[0] = grid.QuarterScore{Home: intp(24), Away: intp(17)}

	claims := []grid.Claim{{Row: 7, Col: 5, Name: "Alice"}}
	result := Squares(4, board, claims)

	q1 := result.Quarters[0]
	if q1.Cell == nil || q1.Cell.HomeDigit != 4 || q1.Cell.AwayDigit != 7 {
		t.Fatalf("Expected digits 4/7, got %+v", q1.Cell)
	}
	if q1.Winner != "Alice" {
		t.Errorf("Expected Alice, got %q", q1.Winner)
	}
}

func TestLedgerNetBalances(t *testing.T) {
	trivia := TriviaResult{
		PayoutByName: map[string]float64{"Alice": 6},
		Collected:    10,
	}
	squares := SquaresResult{
		Pot:          8,
		PayoutByName: map[string]float64{"Bob": 2},
	}
	paidIn := map[string]float64{"Alice": 5, "Bob": 9, "Carol": 4}

	result := Ledger(trivia, squares, paidIn)

	if result.TotalCollected != 18 {
		t.Errorf("Expected total collected 18, got %v", result.TotalCollected)
	}
	if result.TotalOwed != 8 {
		t.Errorf("Expected total owed 8, got %v", result.TotalOwed)
	}
	if result.HouseRemainder != 10 {
		t.Errorf("Expected house remainder 10, got %v", result.HouseRemainder)
	}

	byName := make(map[string]LedgerEntry)
	for _, e := range result.ByPerson {
		byName[e.Name] = e
	}
	if e := byName["Alice"]; e.PaidIn != 5 || e.Owed != 6 || e.Net != 1 {
		t.Errorf("Alice balance wrong: %+v", e)
	}
	if e := byName["Bob"]; e.PaidIn != 9 || e.Owed != 2 || e.Net != -7 {
		t.Errorf("Bob balance wrong: %+v", e)
	}
	if e := byName["Carol"]; e.PaidIn != 4 || e.Owed != 0 || e.Net != -4 {
		t.Errorf("Carol balance wrong: %+v", e)
	}

	// Sorted by name
	names := make([]string, 0, len(result.ByPerson))
	for _, e := range result.ByPerson {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"Alice", "Bob", "Carol"}) {
		t.Errorf("Expected sorted names, got %v", names)
	}
}

func TestLedgerIncludesWinnersWhoNeverPaid(t *testing.T) {
	// A payout name with no paid-in row still appears in the ledger.
	trivia := TriviaResult{PayoutByName: map[string]float64{"Ghost": 3}, Collected: 3}
	result := Ledger(trivia, SquaresResult{PayoutByName: map[string]float64{}}, nil)

	if len(result.ByPerson) != 1 || result.ByPerson[0].Name != "Ghost" {
		t.Fatalf("Expected Ghost in ledger, got %+v", result.ByPerson)
	}
	if result.ByPerson[0].Net != 3 {
		t.Errorf("Expected net 3, got %v", result.ByPerson[0].Net)
	}
}

func TestLedgerConservation(t *testing.T) {
	// Sum of per-person owed equals TotalOwed and the house keeps the
	// rest, to within a cent of rounding per person.
	trivia := TriviaResult{
		PayoutByName: map[string]float64{"A": 3.33, "B": 3.33, "C": 3.33},
		Collected:    10,
	}
	result := Ledger(trivia, SquaresResult{PayoutByName: map[string]float64{}},
		map[string]float64{"A": 4, "B": 3, "C": 3})

	var owed float64
	for _, e := range result.ByPerson {
		owed += e.Owed
	}
	if math.Abs(owed-result.TotalOwed) > 0.001 {
		t.Errorf("Per-person owed %v disagrees with total %v", owed, result.TotalOwed)
	}
	if math.Abs(result.HouseRemainder-0.01) > 0.001 {
		t.Errorf("Expected house remainder 0.01, got %v", result.HouseRemainder)
	}
}
