package domain

// MoodEntry 一筆心情紀錄,寫入後不再變動
type MoodEntry struct {
	ID        string `bson:"_id" json:"id"`
	Mood      string `bson:"mood" json:"mood"`
	UserID    string `bson:"userId" json:"userId"`
	Timestamp string `bson:"timestamp" json:"timestamp"`
	Note      string `bson:"note,omitempty" json:"note,omitempty"`
}

// HistoryEntry 歷史查詢回傳的格式
type HistoryEntry struct {
	ID        string  `json:"id"`
	Mood      string  `json:"mood"`
	Timestamp string  `json:"timestamp"`
	Note      *string `json:"note"`
	Date      string  `json:"date"`
}

// HistoryPage 歷史查詢分頁結果
type HistoryPage struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"hasMore"`
}

// MoodStats 統計結果
type MoodStats struct {
	DaysTracked            int    `json:"daysTracked"`
	MostCommonMood         string `json:"mostCommonMood"`
	PositiveDaysPercentage int    `json:"positiveDaysPercentage"`
}

// PositiveMoods moods counted toward positiveDaysPercentage
var PositiveMoods = []string{"happy", "calm"}
