package view

// NoticeLevel classifies a transient user notification.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is the transient notification surfaced for user actions, both
// successes and caught collaborator failures.
type Notice struct {
	Level   NoticeLevel
	Message string
}
