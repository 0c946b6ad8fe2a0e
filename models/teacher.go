package models

// SavedClass is one imported roster a teacher can reload later.
type SavedClass struct {
	Name         string `json:"name"`
	StudentsText string `json:"students"`
}

// TeacherSettings is the per-teacher document stored at teachers/{uid}.
// Persisted with field-level merge semantics: a write never clobbers
// fields it does not include.
type TeacherSettings struct {
	DisplayName      string                `json:"teacherName"`
	Subject          string                `json:"subject"`
	ExperiencePoints int64                 `json:"xp"`
	Leaderboard      map[string]int64      `json:"leaderboard"`
	RosterText       string                `json:"roster"`
	SavedClasses     map[string]SavedClass `json:"savedClasses"`
}

// LeaderEntry is one row of the class leaderboard view.
type LeaderEntry struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type SettingsUpdate struct {
	DisplayName  string                `json:"teacherName"`
	Subject      string                `json:"subject"`
	RosterText   string                `json:"roster"`
	SavedClasses map[string]SavedClass `json:"savedClasses"`
}

type AmenRequest struct {
	LeaderName string `json:"leaderName"`
}
