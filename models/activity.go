// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// ActivityAction names a mutation recorded in the activity log.
type ActivityAction string

const (
	ActionCreate       ActivityAction = "create"
	ActionUpdate       ActivityAction = "update"
	ActionDelete       ActivityAction = "delete"
	ActionSaveSettings ActivityAction = "save_settings"
	ActionSaveColors   ActivityAction = "save_colors"
	ActionLogin        ActivityAction = "login"
	ActionLogout       ActivityAction = "logout"
)

// ActivityEntry is one line of the admin activity log.
type ActivityEntry struct {
	ID           string         `json:"id"`
	Action       ActivityAction `json:"action"`
	ResourceType ResourceType   `json:"resource_type,omitempty"`
	RecordID     int64          `json:"record_id,omitempty"`
	Username     string         `json:"username,omitempty"`
	CreatedAt    int64          `json:"created_at"` // epoch millis
}

// Message returns a short human readable description of the entry.
func (a ActivityEntry) Message() string {
	switch a.Action {
	case ActionCreate:
		return fmt.Sprintf("Created %s #%d", a.ResourceType, a.RecordID)
	case ActionUpdate:
		return fmt.Sprintf("Updated %s #%d", a.ResourceType, a.RecordID)
	case ActionDelete:
		return fmt.Sprintf("Deleted %s #%d", a.ResourceType, a.RecordID)
	case ActionSaveSettings:
		return "Saved site settings"
	case ActionSaveColors:
		return "Saved color scheme"
	case ActionLogin:
		return fmt.Sprintf("%s logged in", a.Username)
	case ActionLogout:
		return fmt.Sprintf("%s logged out", a.Username)
	}
	return string(a.Action)
}

// HumanizeAge formats the time elapsed between then and now the way the
// dashboard shows it.
func HumanizeAge(then, now time.Time) string {
	d := now.Sub(then)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d/time.Hour))
	}
	return fmt.Sprintf("%d days ago", int(d/(24*time.Hour)))
}

// ActivityView is an ActivityEntry prepared for display.
type ActivityView struct {
	ActivityEntry
	Message string `json:"message"`
	Age     string `json:"age"`
}

// Dashboard summarizes the stored content.
type Dashboard struct {
	Counts   map[ResourceType]int `json:"counts"`
	Activity []ActivityView       `json:"activity"`
}
