// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError describes a rejected answer. The message is meant to be
// shown to the participant as-is.
type ValidationError struct {
	QuestionID int
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Q%d: %s", e.QuestionID, e.Reason)
}

// Normalize validates a raw submitted answer against a question and
// returns its canonical text form. A nil or empty answer means the
// question was skipped: Normalize returns ok=false and no error.
//
// Numeric answers must be integers (a digit string or an integral JSON
// number; bools and fractional values are rejected) within the question's
// inclusive bounds; the normalized form is the decimal string. Choice
// answers must exactly match one of the declared options, case-sensitive.
func Normalize(q Question, raw any) (normalized string, ok bool, err error) {
	if raw == nil {
		return "", false, nil
	}
	if s, isStr := raw.(string); isStr {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", false, nil
		}
		raw = s
	}

	switch q.Kind {
	case KindNumeric:
		value, err := intValue(raw)
		if err != nil {
			return "", false, &ValidationError{QuestionID: q.ID, Reason: "answer must be a whole number"}
		}
		if value < q.Min || value > q.Max {
			return "", false, &ValidationError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("answer must be between %d and %d", q.Min, q.Max),
			}
		}
		return strconv.Itoa(value), true, nil

	case KindChoice:
		s, isStr := raw.(string)
		if !isStr {
			return "", false, &ValidationError{QuestionID: q.ID, Reason: "answer must be text"}
		}
		for _, opt := range q.Options {
			if s == opt {
				return s, true, nil
			}
		}
		return "", false, &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not one of the options", s)}

	default:
		return "", false, &ValidationError{QuestionID: q.ID, Reason: "unsupported question kind"}
	}
}

// intValue extracts an integer from the shapes a JSON answer can take.
// Digit strings only: no signs, no spaces. JSON numbers decode as
// float64 and are accepted only when integral.
func intValue(raw any) (int, error) {
	switch v := raw.(type) {
	case bool:
		return 0, fmt.Errorf("boolean is not a number")
	case string:
		for _, c := range v {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("not a digit string")
			}
		}
		return strconv.Atoi(v)
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer")
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("unsupported answer type %T", raw)
	}
}
