package domain

type NoticeKind string

const (
	NoticeNeutral NoticeKind = "neutral"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// A Notice is a transient user-facing status message. Each notice is
// dismissed independently when its lifetime elapses.
type Notice struct {
	ID   int64
	Kind NoticeKind
	Text string
}
