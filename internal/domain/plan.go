package domain

import "time"

// Plan is a committed scheduling session: one task broken into subtasks,
// each pinned to a slot on one calendar day.
type Plan struct {
	ID         string
	TaskName   string
	CourseName string
	Day        time.Time // date, midnight UTC
	Status     PlanStatus
	CreatedAt  time.Time

	// Entries are loaded alongside the plan by the repository; not a
	// database column.
	Entries []PlanEntry
}

// PlanEntry is one scheduled subtask inside a committed plan.
type PlanEntry struct {
	ID           string
	PlanID       string
	Title        string
	EstimatedMin int
	Source       SubtaskSource
	SlotStart    time.Time
	SlotEnd      time.Time
}
