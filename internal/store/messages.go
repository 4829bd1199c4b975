package store

import (
	"fmt"

	"github.com/standuplabs/standup/pkg/models"
)

// AppendMessage writes a message to the chat log.
func (db *DB) AppendMessage(m *models.Message) error {
	tagged := 0
	if m.Tagged {
		tagged = 1
	}

	_, err := db.Exec(`
		INSERT INTO messages (id, content, author, timestamp, type, tagged)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Content, m.Author, formatTime(m.Timestamp), string(m.Type), tagged)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// RecentMessages returns the most recent messages in chronological order.
// At most limit messages are returned; limit <= 0 means no limit.
func (db *DB) RecentMessages(limit int) ([]models.Message, error) {
	query := `
		SELECT id, content, author, timestamp, type, tagged
		FROM messages ORDER BY timestamp DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var timestamp string
		var tagged int
		if err := rows.Scan(&m.ID, &m.Content, &m.Author, &timestamp, &m.Type, &tagged); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Timestamp, _ = parseTime(timestamp)
		m.Tagged = tagged != 0
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	// The query reads newest-first to apply the limit; callers expect
	// chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
