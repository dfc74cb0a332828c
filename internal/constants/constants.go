// Package constants centralizes Redis key construction and event names so
// producers and consumers cannot drift apart.
package constants

import "fmt"

// Event routing keys published to the events exchange.
const (
	EventAnalysisCompleted = "analysis.completed"
	EventResumeUploaded    = "resume.uploaded"
)

// Report kinds stored on AnalysisReport rows.
const (
	ReportKindAnalysis = "analysis"
	ReportKindMatch    = "match"
)

// UsageKey returns the per-user daily analysis counter key. day is formatted
// as 2006-01-02.
func UsageKey(userID, day string) string {
	return fmt.Sprintf("usage:%s:%s", userID, day)
}

// UploadedMD5SetKey is the Redis set of raw-file MD5s already uploaded, used
// to dedupe re-submissions.
const UploadedMD5SetKey = "resume:uploaded_md5s"
