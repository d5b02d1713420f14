package domain

import "github.com/google/uuid"

type TypeStats struct {
	TypeID        uuid.UUID `json:"type_id"`
	Title         string    `json:"title"`
	Total         int64     `json:"total"`
	ActiveCount   int64     `json:"active_count"`
	ResolvedCount int64     `json:"resolved_count"`
}

type ReportStats struct {
	TotalVisible int64       `json:"total_visible"`
	ByType       []TypeStats `json:"by_type"`
}
