package domain

import (
	"encoding/json"
	"time"
)

// createdAtLayouts are the ISO-8601 forms accepted for createdAt. Fractional
// seconds are accepted after the seconds field by every layout. Values
// without an offset are read as UTC.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	DateLayout,
}

type ticketDocument struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	TicketID  string          `json:"ticketId"`
	Status    TicketStatus    `json:"status"`
	Response  string          `json:"response"`
	CreatedAt json.RawMessage `json:"createdAt"`
}

// MarshalJSON writes the persisted layout.
func (t Ticket) MarshalJSON() ([]byte, error) {
	doc := ticketDocument{
		ID:       t.ID,
		Date:     t.Date,
		TicketID: t.TicketID,
		Status:   t.Status,
		Response: t.Response,
	}
	if t.createdAtRaw != "" {
		doc.CreatedAt = json.RawMessage(t.createdAtRaw)
	} else {
		b, err := t.CreatedAt.MarshalJSON()
		if err != nil {
			return nil, err
		}
		doc.CreatedAt = b
	}
	return json.Marshal(doc)
}

// UnmarshalJSON never fails on createdAt: a value that is not a timestamp
// leaves CreatedAt zero and is kept for re-encoding.
func (t *Ticket) UnmarshalJSON(data []byte) error {
	var doc ticketDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	created, raw := parseCreatedAt(doc.CreatedAt)
	*t = Ticket{
		ID:           doc.ID,
		Date:         doc.Date,
		TicketID:     doc.TicketID,
		Status:       doc.Status,
		Response:     doc.Response,
		CreatedAt:    created,
		createdAtRaw: raw,
	}
	return nil
}

// parseCreatedAt returns the timestamp and, when re-encoding it would not
// reproduce raw, the raw JSON to write back instead.
func parseCreatedAt(raw json.RawMessage) (time.Time, string) {
	if len(raw) == 0 {
		return time.Time{}, ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range createdAtLayouts {
			ts, err := time.Parse(layout, s)
			if err != nil {
				continue
			}
			if ts.Format(time.RFC3339Nano) == s {
				return ts, ""
			}
			return ts, string(raw)
		}
		return time.Time{}, string(raw)
	}
	// Date.now() style epoch milliseconds.
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC(), string(raw)
	}
	return time.Time{}, string(raw)
}
