package services

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/server/models"
)

// UserInput carries the user form fields.
type UserInput struct {
	FirstName string
	LastName  string
	ImageURL  string
}

// Normalize trims fields and substitutes the default avatar for an empty URL.
func (in UserInput) Normalize() UserInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.ImageURL == "" {
		in.ImageURL = models.DefaultImageURL
	}
	return in
}

func (in UserInput) Validate() error {
	if in.FirstName == "" {
		return requiredError("first_name")
	}
	if in.LastName == "" {
		return requiredError("last_name")
	}
	if utf8.RuneCountInString(in.FirstName) > models.MaxNameLength {
		return tooLongError("first_name", models.MaxNameLength)
	}
	if utf8.RuneCountInString(in.LastName) > models.MaxNameLength {
		return tooLongError("last_name", models.MaxNameLength)
	}
	if utf8.RuneCountInString(in.ImageURL) > models.MaxImageURLLength {
		return tooLongError("image_url", models.MaxImageURLLength)
	}
	return nil
}

// PostInput carries the post form fields. TagIDs is treated as a set.
type PostInput struct {
	Title   string
	Content string
	TagIDs  []int64
}

// Normalize trims text and de-duplicates tag ids, keeping first-seen order.
func (in PostInput) Normalize() PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.TagIDs = uniqueIDs(in.TagIDs)
	return in
}

func (in PostInput) Validate() error {
	if in.Title == "" {
		return requiredError("title")
	}
	if in.Content == "" {
		return requiredError("content")
	}
	return nil
}

// TagInput carries the tag form fields.
type TagInput struct {
	Name string
}

func (in TagInput) Normalize() TagInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func (in TagInput) Validate() error {
	if in.Name == "" {
		return requiredError("name")
	}
	return nil
}

func requiredError(field string) error {
	return fmt.Errorf("%w: %s is required", common.ErrorValidation, field)
}

func tooLongError(field string, limit int) error {
	return fmt.Errorf("%w: %s must be at most %d characters", common.ErrorValidation, field, limit)
}

func uniqueIDs(ids []int64) []int64 {
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(result, id) {
			result = append(result, id)
		}
	}
	return result
}
