package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/models"
)

// ErrNotFound signals a missing record; handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ListEntries returns every entry belonging to userID keyed by date, content
// decoded with the stored date folded back in.
func ListEntries(db *gorm.DB, userID uint64) (map[string]map[string]any, error) {
	var entries []models.JournalEntry
	if err := db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}

	result := make(map[string]map[string]any, len(entries))
	for _, entry := range entries {
		content, err := decodeContent(entry)
		if err != nil {
			return nil, err
		}
		result[entry.Date] = content
	}

	return result, nil
}

// ListEntriesOrdered returns the user's decoded entries sorted by date,
// oldest first. Used by the export endpoints.
func ListEntriesOrdered(db *gorm.DB, userID uint64) ([]map[string]any, error) {
	var entries []models.JournalEntry
	if err := db.Where("user_id = ?", userID).Order("date").Find(&entries).Error; err != nil {
		return nil, err
	}

	result := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		content, err := decodeContent(entry)
		if err != nil {
			return nil, err
		}
		result = append(result, content)
	}

	return result, nil
}

// SaveEntry upserts the sanitized content blob for the (user, date) key. An
// existing entry's content is replaced wholesale; there is no field-level
// merge. Returns the decoded stored content.
func SaveEntry(db *gorm.DB, userID uint64, date string, content map[string]any) (map[string]any, error) {
	blob, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	var entry models.JournalEntry
	err = db.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	switch {
	case err == nil:
		entry.Content = models.JSON{JSON: datatypes.JSON(blob)}
		if err := db.Save(&entry).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.JournalEntry{
			UserID:  userID,
			Date:    date,
			Content: models.JSON{JSON: datatypes.JSON(blob)},
		}
		if err := db.Create(&entry).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return decodeContent(entry)
}

// DeleteEntry removes the entry for (user, date). ErrNotFound when no such
// entry exists.
func DeleteEntry(db *gorm.DB, userID uint64, date string) error {
	res := db.Where("user_id = ? AND date = ?", userID, date).Delete(&models.JournalEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// decodeContent unpacks an entry's JSON blob and overlays the row's date key.
func decodeContent(entry models.JournalEntry) (map[string]any, error) {
	content := make(map[string]any)
	if len(entry.Content.JSON) > 0 {
		if err := json.Unmarshal([]byte(entry.Content.JSON), &content); err != nil {
			return nil, err
		}
	}
	content["date"] = entry.Date
	return content, nil
}
