// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Payment method constants
const (
	PaymentCash       = "cash"
	PaymentElectronic = "electronic"
)

// Request types

// SubmitRequest is one participant's entry form. Answer values arrive as
// strings or JSON numbers keyed by question ID; the catalog validator
// sorts out which are acceptable.
type SubmitRequest struct {
	FullName      string         `json:"fullName"`
	ContactHandle string         `json:"contactHandle"`
	ContactNumber string         `json:"contactNumber"`
	PaymentMethod string         `json:"paymentMethod"`
	Answers       map[string]any `json:"answers"`
	Squares       []CellRef      `json:"squares"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

// CorrectAnswersRequest sets ground truth per question. A missing or
// blank value clears that question back to unresolved.
type CorrectAnswersRequest struct {
	Answers map[string]any `json:"answers"`
}

type QuarterScoreInput struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// ScoresRequest replaces the whole quarter-score record, keyed q1..q4.
type ScoresRequest struct {
	Scores map[string]QuarterScoreInput `json:"scores"`
}

type LookupRequest struct {
	Last4 string `json:"last4"`
}

// Response types

type SubmitResponse struct {
	OK            bool    `json:"ok"`
	SubmissionID  string  `json:"submissionId"`
	AnsweredCount int     `json:"answeredCount"`
	SquareCount   int     `json:"squareCount"`
	TotalOwed     float64 `json:"totalOwed"`
}

type AdminLoginResponse struct {
	OK bool `json:"ok"`
}

type LookupResponse struct {
	OK         bool           `json:"ok"`
	Submission SubmissionView `json:"submission"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain views

// CellRef names one grid cell by zero-based coordinates.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Participant is a display-ready person reference.
type Participant struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

// TakenCell is a claimed cell with its owner attached.
type TakenCell struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

// SquaresPublicView lists claims without the digit permutations, so
// nobody can tell which score digits a cell maps to before reveal.
type SquaresPublicView struct {
	Cost             int         `json:"cost"`
	MaxPerSubmission int         `json:"maxPerSubmission"`
	Taken            []TakenCell `json:"taken"`
}

type QuarterScoreView struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// SquaresRevealedView adds the digit permutations and entered scores.
type SquaresRevealedView struct {
	Cost      int                         `json:"cost"`
	RowDigits []int                       `json:"rowDigits"`
	ColDigits []int                       `json:"colDigits"`
	Scores    map[string]QuarterScoreView `json:"scores"`
	Taken     []TakenCell                 `json:"taken"`
}

// SubmissionView is what a participant sees when looking up their own
// entry by contact-number suffix.
type SubmissionView struct {
	SubmissionID  string            `json:"submissionId"`
	FullName      string            `json:"fullName"`
	ContactHandle string            `json:"contactHandle"`
	ContactNumber string            `json:"contactNumber"`
	CreatedAt     time.Time         `json:"createdAt"`
	SubmittedAgo  string            `json:"submittedAgo"`
	Answers       map[string]string `json:"answers"`
	Squares       []CellRef         `json:"squares"`
}

// Results aggregation

type NumericPoint struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
	Value    int    `json:"value"`
}

type ChoiceBar struct {
	Option       string        `json:"option"`
	Count        int           `json:"count"`
	Participants []Participant `json:"participants"`
}

// QuestionSummary carries either scatter points (numeric) or option bars
// (choice), never both.
type QuestionSummary struct {
	ID       int            `json:"id"`
	Text     string         `json:"text"`
	Kind     string         `json:"kind"`
	Cost     int            `json:"cost"`
	ScaleMax int            `json:"scaleMax,omitempty"`
	Points   []NumericPoint `json:"points,omitempty"`
	Bars     []ChoiceBar    `json:"bars,omitempty"`
}

type ResultsResponse struct {
	Questions        []QuestionSummary `json:"questions"`
	TotalSubmissions int               `json:"totalSubmissions"`
}

// Admin settlement state

type QuestionBreakdown struct {
	QuestionID    int      `json:"questionId"`
	Text          string   `json:"text"`
	Collected     float64  `json:"collected"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Winners       []string `json:"winners"`
	SplitAmount   float64  `json:"splitAmount"`
}

type PersonBalance struct {
	Name     string  `json:"name"`
	Initials string  `json:"initials"`
	Color    string  `json:"color"`
	PaidIn   float64 `json:"paidIn"`
	Owed     float64 `json:"owed"`
	Net      float64 `json:"net"`
}

type WinningCell struct {
	Row       int `json:"row"`
	Col       int `json:"col"`
	HomeDigit int `json:"homeDigit"`
	AwayDigit int `json:"awayDigit"`
}

// QuarterView reports one quarter's outcome. Winner is nil when the
// quarter is unscored or the winning cell is unclaimed.
type QuarterView struct {
	Quarter string       `json:"quarter"`
	Home    *int         `json:"home"`
	Away    *int         `json:"away"`
	Cell    *WinningCell `json:"cell"`
	Winner  *Participant `json:"winner"`
	Amount  float64      `json:"amount"`
}

type SquaresSettlementView struct {
	Board        SquaresRevealedView `json:"board"`
	Pot          float64             `json:"pot"`
	QuarterShare float64             `json:"quarterShare"`
	Quarters     []QuarterView       `json:"quarters"`
}

// AdminStateResponse is the full operator dashboard payload, recomputed
// from stored state on every read.
type AdminStateResponse struct {
	CorrectAnswers    map[string]string     `json:"correctAnswers"`
	ByPerson          []PersonBalance       `json:"byPerson"`
	QuestionBreakdown []QuestionBreakdown   `json:"questionBreakdown"`
	TotalCollected    float64               `json:"totalCollected"`
	TotalOwed         float64               `json:"totalOwed"`
	HouseRemainder    float64               `json:"houseRemainder"`
	Squares           SquaresSettlementView `json:"squares"`
}
