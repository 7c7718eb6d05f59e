package web

import (
	requests "mesaYaManager/internal/modules/requests/domain"
	zones "mesaYaManager/internal/modules/zones/domain"
)

// Template names registered by the renderer.
const (
	PageRequests = "requests"
	PageSettings = "settings"
	PageAuth     = "auth"
)

type DashboardPage struct {
	Title string
	View  requests.BoardView
}

// SettingsPage drives the zone assignment screen. Selected is the zone whose waiter picker is open.
type SettingsPage struct {
	Title    string
	Layout   zones.Layout
	Selected int
	Error    string
}

type AuthPage struct {
	Title string
	Error string
}
