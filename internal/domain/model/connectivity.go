package model

// ConnectivityState is the best-effort signal of whether operations against
// the remote store are likely to succeed right now.
type ConnectivityState string

const (
	ConnectivityOnline       ConnectivityState = "online"
	ConnectivityOffline      ConnectivityState = "offline"
	ConnectivityReconnecting ConnectivityState = "reconnecting"
)
