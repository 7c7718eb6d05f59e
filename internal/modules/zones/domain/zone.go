package domain

import (
	"errors"
	"strconv"
	"strings"
)

var ErrUnknownZone = errors.New("unknown zone")

// Zone is a fixed group of physical tables waiters are assigned to.
type Zone struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Tables []int  `json:"tables"`
}

// TablesLabel renders the table numbers as "1, 2, 3".
func (z Zone) TablesLabel() string {
	parts := make([]string, 0, len(z.Tables))
	for _, table := range z.Tables {
		parts = append(parts, strconv.Itoa(table))
	}
	return strings.Join(parts, ", ")
}

var zones = []Zone{
	{ID: 1, Name: "Zone A", Tables: []int{1, 2, 3}},
	{ID: 2, Name: "Zone B", Tables: []int{4, 5, 6}},
	{ID: 3, Name: "Zone C", Tables: []int{7, 8, 9}},
}

// Zones returns the static zone enumeration in display order.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

func ZoneByID(id int) (Zone, bool) {
	for _, zone := range zones {
		if zone.ID == id {
			return zone, true
		}
	}
	return Zone{}, false
}
