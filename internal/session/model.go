package session

import (
	"fmt"

	"github.com/aanand-mishra/student-records/internal/types"
)

// DeleteState is the per-row delete confirmation state.
type DeleteState int

const (
	Idle DeleteState = iota
	PendingConfirm
)

func (d DeleteState) String() string {
	switch d {
	case Idle:
		return "idle"
	case PendingConfirm:
		return "pending_confirm"
	default:
		return fmt.Sprintf("DeleteState(%d)", int(d))
	}
}

func (d DeleteState) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DeleteState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*d = Idle
	case "pending_confirm":
		*d = PendingConfirm
	default:
		return fmt.Errorf("unknown delete state %q", text)
	}
	return nil
}

// NotificationKind picks the notification colour.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Notification is a transient message for the user.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

func success(msg string) Notification { return Notification{Kind: KindSuccess, Message: msg} }

func failure(msg string) Notification { return Notification{Kind: KindError, Message: msg} }

// Result is the outcome of a mutating intent.
type Result struct {
	Student      types.Student `json:"student"`
	Notification Notification  `json:"notification"`
}

// Row is one rendered table row.
type Row struct {
	types.Student
	DeleteState DeleteState `json:"deleteState"`
}

// View is a render-ready snapshot of the current page.
type View struct {
	Records      []Row       `json:"records"`
	CurrentPage  int         `json:"currentPage"`
	TotalPages   int         `json:"totalPages"`
	HasPrevious  bool        `json:"hasPrevious"`
	HasNext      bool        `json:"hasNext"`
	SearchTerm   string      `json:"searchTerm"`
	Stats        types.Stats `json:"stats"`
	EmptyMessage string      `json:"emptyMessage,omitempty"`
}
