package domain

import "strings"

const (
	SystemEntity   = "system"
	RequestsEntity = "requests"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionSnapshot  = "snapshot"
	ActionEvent     = "event"
	ActionHandled   = "handled"
	ActionTick      = "tick"
)

// DashboardTopics are the topics a dashboard client is subscribed to on connect.
func DashboardTopics() []string {
	return []string{
		CustomTopic(RequestsEntity, ActionSnapshot),
		CustomTopic(RequestsEntity, ActionEvent),
		CustomTopic(RequestsEntity, ActionHandled),
		CustomTopic(RequestsEntity, ActionTick),
		ErrorTopic(RequestsEntity),
	}
}

// ErrorTopic returns the canonical error topic for the given entity.
func ErrorTopic(entity string) string {
	return buildEntityTopic(entity, ActionError)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
