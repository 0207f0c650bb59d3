// Package alert implements the background alert worker: a long-lived
// context registered once per process that can render a user-visible
// notification for an emergency even when no foreground view is active.
package alert

import (
	"errors"
	"fmt"
)

// TypeEmergencyTriggered is the worker message type announcing that the
// notification workflow ran. The wire shape is fixed for interoperability
// with the notification host and must not change:
//
//	{"type":"EMERGENCY_TRIGGERED","payload":{"contactCount":3}}
const TypeEmergencyTriggered = "EMERGENCY_TRIGGERED"

// Notification rendering constants.
const (
	NotificationTitle = "Emergency Alert Sent"
	ViewActionID      = "view"
	ViewActionTitle   = "View"
)

// ErrAlreadyRegistered indicates RegisterOnce was called after a successful
// registration in this process.
var ErrAlreadyRegistered = errors.New("alert: worker already registered")

// Message is one inbound worker message.
type Message struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

// Payload carries the emergency summary.
type Payload struct {
	ContactCount int `json:"contactCount"`
}

// Action is one tappable action on a notification.
type Action struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Notification is a rendered user-visible alert.
type Notification struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Actions []Action `json:"actions"`
}

// BuildNotification renders the notification for an emergency message:
// fixed title, body interpolating the contact count, single view action.
func BuildNotification(contactCount int) Notification {
	return Notification{
		Title: NotificationTitle,
		Body:  fmt.Sprintf("Alert sent to %d emergency contact(s) with your location.", contactCount),
		Actions: []Action{
			{ID: ViewActionID, Title: ViewActionTitle},
		},
	}
}

// Notifier shows notifications on the host.
type Notifier interface {
	// Notify displays one notification. At most once per call.
	Notify(n Notification) error
}
