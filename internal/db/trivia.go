package db

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"trivia/internal/engine"

	"gorm.io/gorm"
)

type triviaRecord struct {
	Category string
	Answer   string
	Question string
}

// LoadTriviaLibrary reads category,answer,question rows from a CSV with a
// header line and upserts them into the trivia_libraries table.
func LoadTriviaLibrary(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	records, err := readTrivia(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		entry := TriviaLibrary{
			Category: record.Category,
			Answer:   record.Answer,
		}
		err := conn.Where(TriviaLibrary{Category: entry.Category, Answer: entry.Answer}).
			Assign(TriviaLibrary{Question: record.Question}).
			FirstOrCreate(&entry).Error
		if err != nil {
			return inserted, fmt.Errorf("upsert trivia: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

func readTrivia(path string) ([]triviaRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []triviaRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 3 {
			continue
		}
		category := strings.TrimSpace(row[0])
		answer := strings.TrimSpace(row[1])
		question := strings.TrimSpace(row[2])
		if category == "" || answer == "" || question == "" {
			continue
		}
		records = append(records, triviaRecord{Category: category, Answer: answer, Question: question})
	}
	return records, nil
}

// LibraryClues returns the whole catalogue grouped by category.
func LibraryClues(conn *gorm.DB) ([]engine.Clue, error) {
	var entries []TriviaLibrary
	if err := conn.Order("category, id").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list trivia: %w", err)
	}
	clues := make([]engine.Clue, 0, len(entries))
	for _, entry := range entries {
		clues = append(clues, engine.Clue{
			Category: entry.Category,
			Trivia:   engine.Trivia{Answer: entry.Answer, Question: entry.Question},
		})
	}
	return clues, nil
}
