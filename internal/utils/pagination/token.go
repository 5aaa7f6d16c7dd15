package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor identifies the last item of a page. Items sort by Date desc, then ID desc.
type Cursor struct {
	Date time.Time
	ID   string
}

// IsZero reports whether the cursor points at the first page.
func (c Cursor) IsZero() bool {
	return c.Date.IsZero() && c.ID == ""
}

// EncodeToken creates a URL-safe base64 token from a transaction date and ID.
func EncodeToken(date time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", date.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken. An empty token is the
// first page and decodes to the zero cursor.
func DecodeToken(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return Cursor{Date: date, ID: parts[1]}, nil
}

// NextToken returns a token for the page after items when the page was full,
// nil otherwise.
func NextToken(pageLen, limit int, last Cursor) *string {
	if limit <= 0 || pageLen < limit {
		return nil
	}
	token := EncodeToken(last.Date, last.ID)
	return &token
}
