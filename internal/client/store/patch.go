package store

import "github.com/dmitrijs2005/helpdesk/internal/client/models"

// The helpers below never modify their input slice; each returns a new one.

func cloneAll(list []models.Ticket) []models.Ticket {
	out := make([]models.Ticket, len(list))
	for i, t := range list {
		out[i] = t.Clone()
	}
	return out
}

func appendTicket(list []models.Ticket, t models.Ticket) []models.Ticket {
	out := make([]models.Ticket, 0, len(list)+1)
	out = append(out, list...)
	return append(out, t)
}

// updateTicket replaces the ticket with the given id by fn(ticket). Other
// tickets and the order are kept. An unknown id yields an equal copy.
func updateTicket(list []models.Ticket, id string, fn func(models.Ticket) models.Ticket) []models.Ticket {
	out := make([]models.Ticket, len(list))
	for i, t := range list {
		if t.ID == id {
			t = fn(t)
		}
		out[i] = t
	}
	return out
}

func removeTicket(list []models.Ticket, id string) []models.Ticket {
	out := make([]models.Ticket, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
