package domain

// Waiter is a staff member as returned by the users API. Zone is nil while unassigned.
type Waiter struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Zone     *int   `json:"zone"`
}

// ZoneGroup is a zone with the waiters currently covering it.
type ZoneGroup struct {
	Zone    Zone     `json:"zone"`
	Tables  string   `json:"tables"`
	Waiters []Waiter `json:"waiters"`
}

// Layout is the settings screen model.
type Layout struct {
	Zones      []ZoneGroup `json:"zones"`
	Unassigned []Waiter    `json:"unassigned"`
}

// BuildLayout groups waiters by zone. Waiters pointing at a zone that does not exist are unassigned.
func BuildLayout(waiters []Waiter) Layout {
	layout := Layout{Unassigned: []Waiter{}}
	index := make(map[int]int, len(zones))
	for i, zone := range Zones() {
		layout.Zones = append(layout.Zones, ZoneGroup{Zone: zone, Tables: zone.TablesLabel(), Waiters: []Waiter{}})
		index[zone.ID] = i
	}
	for _, waiter := range waiters {
		if waiter.Zone == nil {
			layout.Unassigned = append(layout.Unassigned, waiter)
			continue
		}
		pos, ok := index[*waiter.Zone]
		if !ok {
			layout.Unassigned = append(layout.Unassigned, waiter)
			continue
		}
		layout.Zones[pos].Waiters = append(layout.Zones[pos].Waiters, waiter)
	}
	return layout
}
