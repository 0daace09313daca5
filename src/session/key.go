package session

// LocaleKey is the store key for the user's response language ("en" or "pt").
const LocaleKey = "locale"

// Key derives the storage key for one conversation subject. One persisted
// message list exists per (subjectType, subjectID) pair; every handle over
// the same store reads and writes the same list.
func Key(subjectType, subjectID string) string {
	return "chat_history_" + subjectType + "_" + subjectID
}
