package cacheengine

// State is the connection lifecycle position of an Engine.
//
//	Unconnected -> Connecting -> Ready -> Stopped
//	Connecting  -> Unconnected      (start failed)
//	Stopped     -> Connecting       (restart)
type State int32

const (
	StateUnconnected State = iota
	StateConnecting
	StateReady
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}
