package mealpress

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// ContentSubmission is the request payload for creating a recipe or post.
type ContentSubmission struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
	Author      string `json:"author"`
	Status      Status `json:"status"`

	Tags []string `json:"tags"`

	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	PrepTime     string    `json:"prepTime"`
	CookTime     string    `json:"cookTime"`
	Servings     int       `json:"servings"`
	Difficulty   string    `json:"difficulty"`
	Nutrition    Nutrition `json:"nutrition"`
}

// ValidationError reports the required fields a submission left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ValidateSubmission checks the required fields for the given kind.
// Recipes additionally require ingredients and instructions.
func ValidateSubmission(kind Kind, sub ContentSubmission) error {
	var missing []string
	if strings.TrimSpace(sub.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(sub.Description) == "" {
		missing = append(missing, "description")
	}
	if kind == KindRecipe {
		if len(FilterEmpty(sub.Ingredients)) == 0 {
			missing = append(missing, "ingredients")
		}
		if len(FilterEmpty(sub.Instructions)) == 0 {
			missing = append(missing, "instructions")
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// NewRecord builds a ContentRecord from a validated submission: a fresh
// id, a slug derived from the title, and a creation timestamp. Status
// defaults to published when the submission carries none.
func NewRecord(kind Kind, sub ContentSubmission) ContentRecord {
	status := sub.Status
	if !validStatus(status) {
		status = StatusPublished
	}
	return ContentRecord{
		ID:           uuid.NewString(),
		Slug:         Slugify(sub.Title),
		Title:        strings.TrimSpace(sub.Title),
		Description:  strings.TrimSpace(sub.Description),
		Author:       strings.TrimSpace(sub.Author),
		Date:         time.Now().UTC().Format(time.RFC3339),
		Status:       status,
		Tags:         FilterEmpty(sub.Tags),
		Ingredients:  FilterEmpty(sub.Ingredients),
		Instructions: FilterEmpty(sub.Instructions),
		PrepTime:     sub.PrepTime,
		CookTime:     sub.CookTime,
		Servings:     sub.Servings,
		Difficulty:   sub.Difficulty,
		Nutrition:    sub.Nutrition,
		Kind:         kind,
		Body:         sub.Body,
	}
}

// MarshalRecord serializes a record as a YAML front-matter block followed
// by the free-text body. YAML encoding quotes delimiter-significant text
// in metadata fields, so titles containing "---" cannot break the block.
func MarshalRecord(rec ContentRecord) ([]byte, error) {
	meta, err := yaml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim + "\n")
	buf.Write(meta)
	buf.WriteString(frontMatterDelim + "\n")
	if rec.Body != "" {
		buf.WriteString("\n")
		buf.WriteString(rec.Body)
		if !strings.HasSuffix(rec.Body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// ParseRecord is the inverse of MarshalRecord. Only the first two
// delimiter lines are structural; a body containing "---" lines round-trips
// unchanged.
func ParseRecord(data []byte) (ContentRecord, error) {
	text := string(data)
	lines := strings.SplitAfter(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontMatterDelim {
		return ContentRecord{}, fmt.Errorf("parse record: missing front matter")
	}
	var meta strings.Builder
	bodyStart := -1
	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontMatterDelim {
			bodyStart = offset + len(lines[i])
			break
		}
		meta.WriteString(lines[i])
		offset += len(lines[i])
	}
	if bodyStart < 0 {
		return ContentRecord{}, fmt.Errorf("parse record: unterminated front matter")
	}
	var rec ContentRecord
	if err := yaml.Unmarshal([]byte(meta.String()), &rec); err != nil {
		return ContentRecord{}, fmt.Errorf("decode front matter: %w", err)
	}
	rec.Body = strings.TrimPrefix(strings.TrimPrefix(text[bodyStart:], "\r\n"), "\n")
	return rec, nil
}
