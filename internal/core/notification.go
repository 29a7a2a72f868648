package core

// NotificationKind is the severity shown on a toast.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
	NotifyWarning NotificationKind = "warning"
)

// MsgAllFieldsRequired is emitted whenever a submit fails required-field validation.
const MsgAllFieldsRequired = "All fields are required!"

// Notification is a fire-and-forget message for the user.
type Notification struct {
	Kind    NotificationKind `json:"type"`
	Message string           `json:"message"`
}

// Valid reports whether k is one of the known kinds.
func (k NotificationKind) Valid() bool {
	switch k {
	case NotifySuccess, NotifyError, NotifyInfo, NotifyWarning:
		return true
	}
	return false
}

func Success(msg string) Notification { return Notification{Kind: NotifySuccess, Message: msg} }
func Error(msg string) Notification   { return Notification{Kind: NotifyError, Message: msg} }
func Info(msg string) Notification    { return Notification{Kind: NotifyInfo, Message: msg} }
func Warning(msg string) Notification { return Notification{Kind: NotifyWarning, Message: msg} }
