package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList stores a list column as a JSON text value in SQLite. Source
// files sometimes carry these fields as comma separated strings, so Scan
// and UnmarshalJSON accept both shapes.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	bs, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return l.parse(string(v))
	case string:
		return l.parse(v)
	default:
		return fmt.Errorf("catalog: cannot scan %T into StringList", src)
	}
}

func (l *StringList) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		return json.Unmarshal([]byte(raw), (*[]string)(l))
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return l.parse(s)
}

// Cruise is one sailing in the catalog. Column names match the cruises
// table exposed to SQL generation.
type Cruise struct {
	CruiseID       string     `db:"cruise_id" json:"cruise_id" validate:"required"`
	ShipName       string     `db:"ship_name" json:"ship_name" validate:"required"`
	DeparturePort  string     `db:"departure_port" json:"departure_port"`
	DepartureDate  string     `db:"departure_date" json:"departure_date"`
	Duration       int        `db:"duration" json:"duration" validate:"gte=0"`
	Destination    string     `db:"destination" json:"destination"`
	PortsOfCall    StringList `db:"ports_of_call" json:"ports_of_call"`
	CabinType      string     `db:"cabin_type" json:"cabin_type"`
	PricePerPerson float64    `db:"price_per_person" json:"price_per_person" validate:"gte=0"`
	TotalPrice     float64    `db:"total_price" json:"total_price" validate:"gte=0"`
	Availability   string     `db:"availability" json:"availability"`
	Amenities      StringList `db:"amenities" json:"amenities"`
	Description    string     `db:"description" json:"description"`
}

func (c *Cruise) UnmarshalJSON(data []byte) error {
	type plain Cruise
	aux := struct {
		*plain
		// aliases seen in older dataset exports
		ID   string `json:"id"`
		Name string `json:"name"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.CruiseID == "" {
		c.CruiseID = aux.ID
	}
	if c.ShipName == "" {
		c.ShipName = aux.Name
	}
	return nil
}

// Document renders the cruise as free text for embedding. The same layout
// is used at index build time and query time so similarity scores stay
// comparable.
func (c *Cruise) Document() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s cruise on %s departing %s from %s.", c.Destination, c.ShipName, c.DepartureDate, c.DeparturePort)
	fmt.Fprintf(&b, " %d nights", c.Duration)
	if len(c.PortsOfCall) > 0 {
		fmt.Fprintf(&b, " visiting %s", strings.Join(c.PortsOfCall, ", "))
	}
	b.WriteString(".")
	if len(c.Amenities) > 0 {
		fmt.Fprintf(&b, " Amenities: %s.", strings.Join(c.Amenities, ", "))
	}
	if c.Description != "" {
		b.WriteString(" ")
		b.WriteString(c.Description)
	}
	return b.String()
}

// Meta returns the metadata attached to the cruise's vector record. Values
// are strings to satisfy backends that only filter on string metadata.
func (c *Cruise) Meta() map[string]string {
	return map[string]string{
		"cruise_id":      c.CruiseID,
		"ship_name":      c.ShipName,
		"destination":    c.Destination,
		"departure_port": c.DeparturePort,
		"departure_date": c.DepartureDate,
		"duration":       fmt.Sprintf("%d", c.Duration),
		"cabin_type":     c.CabinType,
		"availability":   c.Availability,
	}
}

// Pricing is a row of the pricing table keyed by cruise.
type Pricing struct {
	CruiseID      string  `db:"cruise_id" json:"cruise_id" validate:"required"`
	StartingPrice float64 `db:"starting_price" json:"starting_price" validate:"gte=0"`
}
