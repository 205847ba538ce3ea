package services

import (
	"unicode/utf8"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"

	"github.com/google/uuid"
)

const (
	// searchPerEntityLimit caps each of the three entity searches.
	searchPerEntityLimit = 5
	// searchTotalLimit caps the combined result list.
	searchTotalLimit = 15
	// searchMinQueryLen is the shortest query that touches the store.
	searchMinQueryLen = 2
)

type SearchServiceInterface interface {
	Search(db *database.Database, userID uuid.UUID, query string) ([]models.SearchResult, error)
}

type SearchService struct{}

// Search fans the query out over task lists, tasks and notes, tags each hit
// with its entity type and truncates the concatenation. Queries shorter than
// two characters return an empty result without issuing any store query.
func (s *SearchService) Search(db *database.Database, userID uuid.UUID, query string) ([]models.SearchResult, error) {
	results := []models.SearchResult{}
	if utf8.RuneCountInString(query) < searchMinQueryLen {
		return results, nil
	}

	pattern := "%" + query + "%"

	var lists []models.TaskList
	if err := db.DB.
		Where("user_id = ?", userID).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(subtitle) LIKE LOWER(?) OR LOWER(details) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Limit(searchPerEntityLimit).
		Find(&lists).Error; err != nil {
		return nil, err
	}
	for _, l := range lists {
		results = append(results, models.SearchResult{
			ID:      l.ID,
			Type:    models.SearchTaskList,
			Title:   l.Title,
			Details: l.Details,
		})
	}

	var tasks []models.Task
	if err := db.DB.
		Where("user_id = ?", userID).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(task) LIKE LOWER(?) OR LOWER(details) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Limit(searchPerEntityLimit).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	for _, t := range tasks {
		results = append(results, models.SearchResult{
			ID:      t.ID,
			Type:    models.SearchTask,
			Title:   t.Title,
			Details: t.Details,
		})
	}

	var notes []models.Note
	if err := db.DB.
		Where("user_id = ?", userID).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(details) LIKE LOWER(?)",
			pattern, pattern).
		Limit(searchPerEntityLimit).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	for _, n := range notes {
		results = append(results, models.SearchResult{
			ID:      n.ID,
			Type:    models.SearchNote,
			Title:   n.Title,
			Details: n.Details,
		})
	}

	if len(results) > searchTotalLimit {
		results = results[:searchTotalLimit]
	}
	return results, nil
}

var SearchServiceInstance SearchServiceInterface = &SearchService{}
