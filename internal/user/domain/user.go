package domain

// Preferences 使用者偏好設定
type Preferences struct {
	Theme         string `bson:"theme" json:"theme"`
	Notifications bool   `bson:"notifications" json:"notifications"`
	PrivacyMode   bool   `bson:"privacyMode" json:"privacyMode"`
}

// User 使用者文件
// Password 永遠不回傳給前端
type User struct {
	ID          string      `bson:"_id" json:"id"`
	Email       string      `bson:"email" json:"email"`
	Username    string      `bson:"username" json:"username"`
	Password    string      `bson:"password" json:"-"`
	Name        string      `bson:"name" json:"name"`
	Avatar      string      `bson:"avatar" json:"avatar"`
	CreatedAt   string      `bson:"createdAt" json:"createdAt"`
	LastLoginAt string      `bson:"lastLoginAt" json:"lastLoginAt"`
	UpdatedAt   string      `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	MoodStreak  int         `bson:"moodStreak" json:"moodStreak"`
	Preferences Preferences `bson:"preferences" json:"preferences"`
}

// DefaultPreferences 新用戶預設偏好
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "light",
		Notifications: true,
		PrivacyMode:   false,
	}
}

// ProfileUpdate PUT /api/profile 可更新的欄位
type ProfileUpdate struct {
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar"`
	Preferences *Preferences `json:"preferences"`
}

// Settings 使用者設定文件,以 userId 為主鍵 upsert
type Settings struct {
	ID                   string `bson:"_id" json:"id"`
	UserID               string `bson:"userId" json:"userId"`
	DisplayName          string `bson:"displayName" json:"displayName"`
	ReminderTime         string `bson:"reminderTime" json:"reminderTime"`
	DarkMode             bool   `bson:"darkMode" json:"darkMode"`
	NotificationsEnabled bool   `bson:"notificationsEnabled" json:"notificationsEnabled"`
	UpdatedAt            string `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DefaultSettings settings returned when the user has none persisted
func DefaultSettings(userID string) Settings {
	return Settings{
		ID:                   userID,
		UserID:               userID,
		DisplayName:          "",
		ReminderTime:         "08:00",
		DarkMode:             false,
		NotificationsEnabled: true,
	}
}
