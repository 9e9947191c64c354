package catalog

import "keazy/models"

// fallbackEntries is the bundled synonym map used when the services
// collection is unreachable or empty. Keywords are lowercase; order is the
// resolution order.
func fallbackEntries() []models.ServiceSynonyms {
	return []models.ServiceSynonyms{
		{Service: "plumber", Keywords: []string{"plumber", "plumbing", "pipe", "leak", "tap", "drain", "fundi wa maji"}},
		{Service: "electrician", Keywords: []string{"electrician", "electric", "wiring", "socket", "power", "fundi wa stima"}},
		{Service: "cleaner", Keywords: []string{"cleaner", "cleaning", "housekeeping", "laundry", "usafi"}},
		{Service: "carpenter", Keywords: []string{"carpenter", "furniture", "wood", "cabinet", "seremala"}},
		{Service: "painter", Keywords: []string{"painter", "painting", "paint", "rangi"}},
		{Service: "mechanic", Keywords: []string{"mechanic", "car repair", "engine", "garage", "fundi wa gari"}},
		{Service: "gardener", Keywords: []string{"gardener", "gardening", "lawn", "landscaping", "shamba"}},
		{Service: "mason", Keywords: []string{"mason", "masonry", "brick", "concrete", "fundi wa ujenzi"}},
	}
}
