package engine

import "time"

// MaxHistory bounds the activity log kept in a save
const MaxHistory = 500

// ActivityEntry is one recorded player action
type ActivityEntry struct {
	Number    int    `json:"number"`
	Action    string `json:"action"`
	Target    string `json:"target,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Success   bool   `json:"success"`
	Code      Code   `json:"code,omitempty"`
	Level     int    `json:"level"`
	Coins     int    `json:"coins"`
	Timestamp int64  `json:"timestamp"`
}

// AddActivity appends an entry to the log. Numbering keeps counting after old
// entries are dropped.
func (s *PlayerState) AddActivity(action, target, detail string, err error, now time.Time) ActivityEntry {
	entry := ActivityEntry{
		Number:    s.TotalActions + 1,
		Action:    action,
		Target:    target,
		Detail:    detail,
		Success:   err == nil,
		Code:      CodeOf(err),
		Level:     s.Level,
		Coins:     s.Coins,
		Timestamp: now.Unix(),
	}
	if err != nil && entry.Detail == "" {
		entry.Detail = err.Error()
	}
	s.History = append(s.History, entry)
	if over := len(s.History) - MaxHistory; over > 0 {
		s.History = append([]ActivityEntry(nil), s.History[over:]...)
	}
	s.TotalActions++
	return entry
}
