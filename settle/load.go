// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package settle

import (
	"database/sql"
	"fmt"
)

// LoadAnswers retrieves all stored answers grouped by question, with the
// submitter's display name attached.
func LoadAnswers(db *sql.DB) (map[int][]Answer, error) {
	rows, err := db.Query(`
		SELECT a.question_id, a.answer_text, s.full_name
		FROM answer a
		JOIN submission s ON s.id = a.submission_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int][]Answer)
	for rows.Next() {
		var questionID int
		var text, name string
		if err := rows.Scan(&questionID, &text, &name); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		grouped[questionID] = append(grouped[questionID], Answer{Name: name, Text: text})
	}
	return grouped, rows.Err()
}

// LoadCorrectAnswers retrieves the operator-declared correct answers.
// Questions absent from the map are unresolved.
func LoadCorrectAnswers(db *sql.DB) (map[int]string, error) {
	rows, err := db.Query(`SELECT question_id, answer_text FROM correct_answer`)
	if err != nil {
		return nil, fmt.Errorf("failed to query correct answers: %w", err)
	}
	defer rows.Close()

	correct := make(map[int]string)
	for rows.Next() {
		var questionID int
		var text string
		if err := rows.Scan(&questionID, &text); err != nil {
			return nil, fmt.Errorf("failed to scan correct answer: %w", err)
		}
		correct[questionID] = text
	}
	return correct, rows.Err()
}

// LoadPaidIn sums what each person owes the pool across all of their
// submissions, keyed by display name.
func LoadPaidIn(db *sql.DB) (map[string]float64, error) {
	rows, err := db.Query(`
		SELECT full_name, SUM(total_owed)
		FROM submission
		GROUP BY full_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query paid-in totals: %w", err)
	}
	defer rows.Close()

	paid := make(map[string]float64)
	for rows.Next() {
		var name string
		var total float64
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan paid-in total: %w", err)
		}
		paid[name] = total
	}
	return paid, rows.Err()
}
