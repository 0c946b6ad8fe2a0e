// Package reconciler holds the pure rules that merge remote-persisted
// teacher settings with local edits: defaults, remote-over-default merge,
// the optimistic Amen update, and the leaderboard view.
package reconciler

import (
	"errors"
	"math/rand"
	"sort"
	"strings"

	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/models"
)

const (
	DefaultDisplayName = "Teacher"
	DefaultSubject     = "Homeroom"

	// AmenReward is the XP granted per affirmation.
	AmenReward = 10

	// TopLeaderLimit caps the leaderboard view.
	TopLeaderLimit = 4
)

var ErrEmptyRoster = errors.New("roster has no student names")

func DefaultSettings(displayName string) models.TeacherSettings {
	if displayName == "" {
		displayName = DefaultDisplayName
	}
	return models.TeacherSettings{
		DisplayName:  displayName,
		Subject:      DefaultSubject,
		Leaderboard:  map[string]int64{},
		SavedClasses: map[string]models.SavedClass{},
	}
}

// MergeRemote lays the remote document over defaults: remote fields win,
// absent remote fields keep their default.
func MergeRemote(remote gateway.Fields, displayName string) models.TeacherSettings {
	s := DefaultSettings(displayName)

	if v, ok := remote["teacherName"].(string); ok {
		s.DisplayName = v
	}
	if v, ok := remote["subject"].(string); ok {
		s.Subject = v
	}
	if v, ok := remote["xp"]; ok {
		s.ExperiencePoints = toInt64(v)
	}
	if v, ok := remote["roster"].(string); ok {
		s.RosterText = v
	}
	if board, ok := remote["leaderboard"].(map[string]interface{}); ok {
		for name, count := range board {
			s.Leaderboard[name] = toInt64(count)
		}
	}
	if classes, ok := remote["savedClasses"].(map[string]interface{}); ok {
		for id, raw := range classes {
			if cls, ok := raw.(map[string]interface{}); ok {
				name, _ := cls["name"].(string)
				students, _ := cls["students"].(string)
				s.SavedClasses[id] = models.SavedClass{Name: name, StudentsText: students}
			}
		}
	}
	return s
}

// SettingsFields encodes the full settings object for a merge write.
func SettingsFields(s models.TeacherSettings) gateway.Fields {
	classes := make(map[string]interface{}, len(s.SavedClasses))
	for id, cls := range s.SavedClasses {
		classes[id] = map[string]interface{}{"name": cls.Name, "students": cls.StudentsText}
	}
	board := make(map[string]interface{}, len(s.Leaderboard))
	for name, count := range s.Leaderboard {
		board[name] = count
	}
	return gateway.Fields{
		"teacherName":  s.DisplayName,
		"subject":      s.Subject,
		"xp":           s.ExperiencePoints,
		"leaderboard":  board,
		"roster":       s.RosterText,
		"savedClasses": classes,
	}
}

// ApplyAmen is the optimistic affirmation update: XP goes up by the fixed
// reward and a non-blank leader name earns one tally. Returns the updated
// settings and the partial fields to merge-write; the caller applies the
// local update before the remote write confirms.
func ApplyAmen(s models.TeacherSettings, leaderName string) (models.TeacherSettings, gateway.Fields) {
	s.ExperiencePoints += AmenReward

	board := make(map[string]int64, len(s.Leaderboard)+1)
	for name, count := range s.Leaderboard {
		board[name] = count
	}
	if name := strings.TrimSpace(leaderName); name != "" {
		board[name]++
	}
	s.Leaderboard = board

	encoded := make(map[string]interface{}, len(board))
	for name, count := range board {
		encoded[name] = count
	}
	return s, gateway.Fields{
		"xp":          s.ExperiencePoints,
		"leaderboard": encoded,
	}
}

// TopLeaders sorts the leaderboard by descending count, ties broken by name
// ascending, truncated to limit.
func TopLeaders(s models.TeacherSettings, limit int) []models.LeaderEntry {
	entries := make([]models.LeaderEntry, 0, len(s.Leaderboard))
	for name, count := range s.Leaderboard {
		entries = append(entries, models.LeaderEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// PickRandomLeader draws a uniform random name from the comma-separated
// roster.
func PickRandomLeader(roster string) (string, error) {
	var names []string
	for _, raw := range strings.Split(roster, ",") {
		if name := strings.TrimSpace(raw); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", ErrEmptyRoster
	}
	return names[rand.Intn(len(names))], nil
}

// LoadSavedClass switches the current roster and subject to a saved class.
func LoadSavedClass(s models.TeacherSettings, courseID string) (models.TeacherSettings, bool) {
	cls, ok := s.SavedClasses[courseID]
	if !ok {
		return s, false
	}
	s.RosterText = cls.StudentsText
	s.Subject = cls.Name
	return s, true
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
