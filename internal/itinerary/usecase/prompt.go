package usecase

import (
	"fmt"
	"strings"

	"sarawak-tourism/internal/itinerary/domain/repository"
)

var budgetTiers = map[string]string{
	"low":    "Budget-conscious: hostels or homestays, public transport and hawker food, mostly free or low-cost activities.",
	"medium": "Mid-range: comfortable 3-star hotels, a mix of guided tours and self-guided visits, local restaurants.",
	"high":   "Premium: 4-5 star resorts, private transfers and guides, fine dining and exclusive experiences.",
}

// promptContext is the reference data embedded in a prompt
type promptContext struct {
	Attractions []repository.Attraction
	Events      []repository.Event
	Holidays    []repository.Holiday
}

// buildPrompt renders the planning prompt. Every listed entry is cut to maxEntry runes.
func buildPrompt(req *GenerateRequest, pc promptContext, maxEntry int) string {
	var b strings.Builder

	interests := "general sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}

	fmt.Fprintf(&b, "Create a %d-day travel itinerary for Sarawak, Malaysia.\n\n", req.Duration)
	fmt.Fprintf(&b, "Traveller interests: %s\n", interests)
	fmt.Fprintf(&b, "Budget (%s): %s\n\n", req.Budget, budgetTiers[req.Budget])

	if len(pc.Attractions) > 0 {
		b.WriteString("Attractions to choose from:\n")
		for _, a := range pc.Attractions {
			line := a.Name
			if a.Location != "" {
				line += " (" + a.Location + ")"
			}
			if a.Description != "" {
				line += ": " + a.Description
			}
			writeEntry(&b, line, maxEntry)
		}
		b.WriteString("\n")
	}

	if len(pc.Events) > 0 {
		b.WriteString("Upcoming events:\n")
		for _, e := range pc.Events {
			line := e.Title
			if e.StartDate != nil {
				line += " on " + e.StartDate.UTC().Format("2006-01-02")
			}
			if e.LocationName != "" {
				line += " at " + e.LocationName
			}
			if e.Description != "" {
				line += ": " + e.Description
			}
			writeEntry(&b, line, maxEntry)
		}
		b.WriteString("\n")
	}

	if len(pc.Holidays) > 0 {
		b.WriteString("Upcoming public holidays:\n")
		for _, h := range pc.Holidays {
			writeEntry(&b, h.Date.UTC().Format("2006-01-02")+" "+h.Name, maxEntry)
		}
		b.WriteString("\n")
	}

	b.WriteString("For each day give a morning, afternoon and evening plan with travel tips, ")
	b.WriteString("estimated costs in MYR matching the budget, and note any events or holidays that fall on the trip.")
	return b.String()
}

func writeEntry(b *strings.Builder, line string, maxLen int) {
	b.WriteString("- ")
	b.WriteString(truncate(line, maxLen))
	b.WriteString("\n")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
