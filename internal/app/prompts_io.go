package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

const (
	dataDirName     = "data"
	promptsFileName = "prompts.csv"
)

type promptRecord struct {
	Phrase string `csv:"phrase"`
}

func promptsFilePath(guildID string) string {
	return filepath.Join(dataDirName, guildID, promptsFileName)
}

// ExportPrompts writes the guild's prompt list to its CSV file in
// rotation order.
func (a *App) ExportPrompts(guildID string) error {
	tracking, ok := a.registry.Get(guildID)
	if !ok {
		return fmt.Errorf("no tracking for guild %s", guildID)
	}

	dirPath := filepath.Join(dataDirName, guildID)
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return fmt.Errorf("error creating %s directory: %w", dirPath, err)
	}

	f, err := os.Create(promptsFilePath(guildID))
	if err != nil {
		return err
	}
	defer f.Close()

	phrases := tracking.Prompts.List()
	records := make([]promptRecord, 0, len(phrases))
	for _, phrase := range phrases {
		records = append(records, promptRecord{Phrase: phrase})
	}

	return gocsv.MarshalFile(&records, f)
}

// ImportPrompts adds the phrases from the guild's CSV file to its pool.
// Empty and duplicate phrases are skipped. Returns how many were added.
func (a *App) ImportPrompts(guildID string) (int, error) {
	f, err := os.Open(promptsFilePath(guildID))
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer f.Close()

	records := []promptRecord{}
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return 0, fmt.Errorf("error reading prompts file for %s: %w", guildID, err)
	}

	tracking := a.registry.GetOrCreate(guildID)
	added := 0
	for _, record := range records {
		if tracking.Prompts.Add(record.Phrase) {
			added++
		}
	}

	if added == 0 {
		return 0, nil
	}
	return added, a.registry.Save(guildID)
}
