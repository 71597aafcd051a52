package cli

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

// BoardPayload is the JSON shape of a board
func BoardPayload(b *models.Board) map[string]any {
	return map[string]any{
		"id":            b.ID,
		"name":          b.Name,
		"order_version": b.OrderVersion,
		"created_at":    b.CreatedAt.Format(time.RFC3339),
	}
}

// ColumnPayload is the JSON shape of a column
func ColumnPayload(c *models.Column) map[string]any {
	return map[string]any{
		"id":            c.ID,
		"board_id":      c.BoardID,
		"name":          c.Name,
		"order":         c.Order,
		"order_version": c.OrderVersion,
	}
}

// TaskPayload is the JSON shape of a task. Archived tasks carry no order.
func TaskPayload(t *models.Task) map[string]any {
	p := map[string]any{
		"id":          t.ID,
		"column_id":   t.ColumnID,
		"board_id":    t.BoardID,
		"title":       t.Title,
		"description": t.Description,
		"archived":    t.Archived,
		"updated_at":  t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Archived {
		p["order"] = nil
	} else {
		p["order"] = t.Order
	}
	return p
}

// Message is a Result for commands that only acknowledge an action
type Message struct {
	Text string
	ID   int
	Data map[string]any
}

func (m Message) Payload() any {
	return m.Data
}

func (m Message) IDs() []int {
	if m.ID == 0 {
		return nil
	}
	return []int{m.ID}
}

func (m Message) Render() string {
	return Done("%s", m.Text)
}
