// Package realtime pushes order lifecycle events to live viewers grouped in
// company rooms. The Hub serves websocket connections of this process and
// RedisRelay forwards events between processes.
package realtime

import (
	"slices"
	"sync"

	"courierhub/internal/core/domain/model/kernel"
)

// ConnID identifies a live connection.
type ConnID string

const roomPrefix = "company-"

// RoomName returns the room of a company.
func RoomName(companyID kernel.UUID) string {
	return roomPrefix + companyID.String()
}

// Registry maps rooms to the connections subscribed to them. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]map[ConnID]struct{}
	memberOf map[ConnID]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[string]map[ConnID]struct{}),
		memberOf: make(map[ConnID]map[string]struct{}),
	}
}

// Join adds conn to room. Joining twice is a no-op.
func (r *Registry) Join(conn ConnID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		members = make(map[ConnID]struct{})
		r.rooms[room] = members
	}
	members[conn] = struct{}{}

	joined, ok := r.memberOf[conn]
	if !ok {
		joined = make(map[string]struct{})
		r.memberOf[conn] = joined
	}
	joined[room] = struct{}{}
}

// Leave removes conn from room.
func (r *Registry) Leave(conn ConnID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leave(conn, room)
}

// Remove drops conn from every room it joined.
func (r *Registry) Remove(conn ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for room := range r.memberOf[conn] {
		r.leave(conn, room)
	}
	delete(r.memberOf, conn)
}

func (r *Registry) leave(conn ConnID, room string) {
	if members, ok := r.rooms[room]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	if joined, ok := r.memberOf[conn]; ok {
		delete(joined, room)
		if len(joined) == 0 {
			delete(r.memberOf, conn)
		}
	}
}

// Members returns a snapshot of the connections in room.
func (r *Registry) Members(room string) []ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]ConnID, 0, len(r.rooms[room]))
	for conn := range r.rooms[room] {
		members = append(members, conn)
	}
	slices.Sort(members)
	return members
}

// Rooms returns the rooms conn belongs to.
func (r *Registry) Rooms(conn ConnID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]string, 0, len(r.memberOf[conn]))
	for room := range r.memberOf[conn] {
		rooms = append(rooms, room)
	}
	slices.Sort(rooms)
	return rooms
}
