package domain

import (
	"encoding/json"
	"time"
)

// Target wire event name delivered on the fan-out channel
type Target string

const (
	// TargetMoodUpdated broadcast after a mood entry is persisted
	TargetMoodUpdated Target = "MoodUpdated"
	// TargetStatsUpdated broadcast of recalculated statistics
	TargetStatsUpdated Target = "StatsUpdated"
	// TargetNotificationReceived generic user notification
	TargetNotificationReceived Target = "NotificationReceived"
)

// MessageType local log type exposed to consumers of the live feed
type MessageType string

const (
	// MoodUpdate local type for TargetMoodUpdated
	MoodUpdate MessageType = "mood_update"
	// StatsUpdate local type for TargetStatsUpdated
	StatsUpdate MessageType = "stats_update"
	// Notification local type for TargetNotificationReceived
	Notification MessageType = "notification"
)

// TargetForType map a broadcast request type to its wire target
func TargetForType(t string) (Target, bool) {
	switch MessageType(t) {
	case MoodUpdate:
		return TargetMoodUpdated, true
	case StatsUpdate:
		return TargetStatsUpdated, true
	case Notification:
		return TargetNotificationReceived, true
	}
	return "", false
}

// TypeForTarget map a wire target back to the local log type
func TypeForTarget(target Target) (MessageType, bool) {
	switch target {
	case TargetMoodUpdated:
		return MoodUpdate, true
	case TargetStatsUpdated:
		return StatsUpdate, true
	case TargetNotificationReceived:
		return Notification, true
	}
	return "", false
}

// BroadcastMessage 發布到 fan-out channel 的訊息
// arguments 固定只帶一個 payload
type BroadcastMessage struct {
	Target    Target        `json:"target"`
	Arguments []interface{} `json:"arguments"`
}

// NewBroadcastMessage create a BroadcastMessage with exactly one payload
func NewBroadcastMessage(target Target, payload interface{}) BroadcastMessage {
	return BroadcastMessage{
		Target:    target,
		Arguments: []interface{}{payload},
	}
}

// NotificationPayload mood-update 的 payload
type NotificationPayload struct {
	Mood           string `json:"mood"`
	Timestamp      string `json:"timestamp"`
	UserID         string `json:"userId"`
	Note           string `json:"note,omitempty"`
	DisplayMessage string `json:"displayMessage"`
	EntryID        string `json:"entryId"`
}

// ConnectionState subscriber connection lifecycle state
type ConnectionState int

const (
	// Disconnected initial/terminal state
	Disconnected ConnectionState = iota
	// Connecting transport handshake in progress
	Connecting
	// Connected live
	Connected
	// Reconnecting transport dropped, retry scheduled
	Reconnecting
)

func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	}
	return "disconnected"
}

// LogEntry 訂閱端收到的一筆事件
// 插入順序 = 到達順序,不保證等於發布順序
type LogEntry struct {
	Type       MessageType     `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

// NegotiateInfo connection info returned by the negotiate endpoint
type NegotiateInfo struct {
	URL         string `json:"url"`
	AccessToken string `json:"accessToken,omitempty"`
}
