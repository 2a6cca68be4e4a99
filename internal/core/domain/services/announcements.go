package services

import (
	"fmt"
	"strings"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"
)

const newOrderTitle = "New order"

// NewOrderFromClient announces one new order of a client to company agents.
func NewOrderFromClient(clientName string) notification.Message {
	if strings.TrimSpace(clientName) == "" {
		return notification.Message{Title: newOrderTitle, Content: "A new order was received"}
	}
	return notification.Message{
		Title:   newOrderTitle,
		Content: fmt.Sprintf("New order from client %s", clientName),
	}
}

// NewOrdersFromClient announces a confirmed batch of a client's orders.
func NewOrdersFromClient(clientName string) notification.Message {
	if strings.TrimSpace(clientName) == "" {
		return notification.Message{Title: newOrderTitle, Content: "New orders were confirmed"}
	}
	return notification.Message{
		Title:   newOrderTitle,
		Content: fmt.Sprintf("New orders from client %s", clientName),
	}
}

// OrderAssigned tells an agent an order was sent to them.
func OrderAssigned(orderID kernel.UUID) notification.Message {
	return notification.Message{
		Title:   newOrderTitle,
		Content: fmt.Sprintf("New order #%s assigned to you", orderID),
	}
}
