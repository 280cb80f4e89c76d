package manager

import "github.com/christianbiango/team-up/internal/notify"

// User-facing notices for the offline fallback paths.

func notifySavedOffline() (notify.Severity, string) {
	return notify.SeveritySuccess, "Saved offline. Changes will sync when the connection returns."
}

func notifyDeletedOffline() (notify.Severity, string) {
	return notify.SeveritySuccess, "Marked for deletion. The record will be removed on the next sync."
}

func notifyJoinedOffline() (notify.Severity, string) {
	return notify.SeveritySuccess, "Participation saved offline. It will sync when the connection returns."
}

func notifyLeftOffline() (notify.Severity, string) {
	return notify.SeveritySuccess, "Participation cancelled offline. The change will sync when the connection returns."
}
