package domain

import "time"

// ClassificationRecord is one persisted axis decision for one conversation.
type ClassificationRecord struct {
	ID              int64
	ConversationRef string
	Axis            string
	Value           string
	Confidence      float64
	Method          string
	ClassifiedAt    time.Time
}

// SerialRecord is one serial or part number extracted from a conversation.
type SerialRecord struct {
	ID              int64
	ConversationRef string
	Serial          string
	ExtractedAt     time.Time
}

// ClassificationStats aggregates the audit store for the status command.
type ClassificationStats struct {
	TotalClassifications int
	Conversations        int
	AvgConfidence        float64

	HeuristicCount int
	LLMCount       int
	NoneCount      int

	BucketBelow50 int
	Bucket50to70  int
	Bucket70to90  int
	Bucket90Plus  int
}
