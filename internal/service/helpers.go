package service

import (
	"strings"
	"time"
)

// BuildMessage joins post content and hashtags the way every platform
// adapter renders them: content, a blank line, hashtags separated by
// spaces.
func BuildMessage(content string, hashtags []string) string {
	if len(hashtags) == 0 {
		return content
	}
	return content + "\n\n" + strings.Join(hashtags, " ")
}

// IsFutureSchedule reports whether t is a real scheduling instant strictly
// ahead of now. A zero time means publish immediately.
func IsFutureSchedule(t, now time.Time) bool {
	return !t.IsZero() && t.After(now)
}
