package service

import (
	"fmt"
	"sort"

	"github.com/icpcsp/compreg/internal/domain"
)

type siteSlots struct {
	site   domain.Site
	filled int
}

func (s *siteSlots) hasRoom() bool {
	return s.filled < s.site.Capacity
}

func (s *siteSlots) take(team domain.Team) domain.SeatAssignment {
	s.filled++
	return domain.SeatAssignment{
		TeamID:   team.ID,
		TeamName: team.Name,
		SiteID:   s.site.ID,
		SiteName: s.site.Name,
		Seat:     fmt.Sprintf("%s-%02d", s.site.Name, s.filled),
	}
}

// AssignSeats places teams into sites without exceeding any capacity.
// Teams keep their chosen site while it has room. The rest are spread round-robin
// over the sites that still have room, and whatever fits nowhere is returned unplaced.
// The result depends only on the ids, so reruns over the same input agree.
func AssignSeats(teams []domain.Team, sites []domain.Site) domain.AllocationResult {
	ordered := make([]domain.Team, len(teams))
	copy(ordered, teams)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var slots []*siteSlots
	byID := make(map[uint]*siteSlots, len(sites))
	for _, site := range sites {
		if site.Capacity <= 0 {
			continue
		}
		slot := &siteSlots{site: site}
		slots = append(slots, slot)
		byID[site.ID] = slot
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].site.ID < slots[j].site.ID })

	result := domain.AllocationResult{
		Assignments: []domain.SeatAssignment{},
		Unplaced:    []domain.Team{},
	}

	var rest []domain.Team
	for _, team := range ordered {
		if team.SiteID != nil {
			if slot, ok := byID[*team.SiteID]; ok && slot.hasRoom() {
				result.Assignments = append(result.Assignments, slot.take(team))
				continue
			}
		}
		rest = append(rest, team)
	}

	cursor := 0
	for _, team := range rest {
		placed := false
		for tries := 0; tries < len(slots); tries++ {
			slot := slots[cursor]
			cursor = (cursor + 1) % len(slots)
			if slot.hasRoom() {
				result.Assignments = append(result.Assignments, slot.take(team))
				placed = true
				break
			}
		}
		if !placed {
			result.Unplaced = append(result.Unplaced, team)
		}
	}

	return result
}
