package mealpress

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// CommentStore collects visitor comments. The store owns id assignment.
type CommentStore interface {
	Add(author, content string) Comment
	List() []Comment
}

// MemoryComments is the default CommentStore: process-local, reset on
// restart. Ids come from a monotonic counter under the lock, so
// concurrent submissions never collide.
type MemoryComments struct {
	mu     sync.Mutex
	nextID int
	items  []Comment
}

// NewMemoryComments creates an empty in-memory comment store.
func NewMemoryComments() *MemoryComments {
	return &MemoryComments{}
}

// Add appends a comment and returns it with its assigned id.
func (s *MemoryComments) Add(author, content string) Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	comment := Comment{
		ID:      s.nextID,
		Author:  author,
		Content: content,
		Date:    time.Now().UTC().Format(time.RFC3339),
	}
	s.items = append(s.items, comment)
	return comment
}

// List returns a copy of all comments in submission order.
func (s *MemoryComments) List() []Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Comment, len(s.items))
	copy(out, s.items)
	return out
}

func (a *App) handleCommentCreate(c echo.Context) error {
	var req struct {
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	req.Author = strings.TrimSpace(req.Author)
	req.Content = strings.TrimSpace(req.Content)
	if req.Author == "" || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "author and content are required")
	}
	comment := a.Comments.Add(req.Author, req.Content)
	return c.JSON(http.StatusCreated, comment)
}

func (a *App) handleCommentList(c echo.Context) error {
	comments := a.Comments.List()
	if comments == nil {
		comments = []Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}
