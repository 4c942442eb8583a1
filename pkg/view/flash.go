package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Blocking reports whether the alert has to be acknowledged before the page
// is usable again. Failed logins and failed mutations come as errors.
func (k FlashKind) Blocking() bool { return k == FlashError }

// Class is the alert css class for the kind.
func (k FlashKind) Class() string {
	switch k {
	case FlashSuccess:
		return "alert-success"
	case FlashWarning:
		return "alert-warning"
	case FlashError:
		return "alert-danger"
	default:
		return "alert-info"
	}
}

// Flash is the alert left by one console action (login, logout, a confirmed
// dialog) and shown once on the next page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}
