package planning

import "strings"

// Vehicle is a travel-mode token understood by the routing API. It is an
// open-ended string validated against a configured allow-list rather than a
// fixed enum, because deployments differ in which modes they expose.
type Vehicle string

const (
	VehicleCar        Vehicle = "car"
	VehicleBike       Vehicle = "bike"
	VehicleFoot       Vehicle = "foot"
	VehicleScooter    Vehicle = "scooter"
	VehicleTruck      Vehicle = "truck"
	VehicleSmallTruck Vehicle = "small_truck"
)

// String returns the string representation of the vehicle token.
func (v Vehicle) String() string {
	return string(v)
}

// NormalizeVehicle lowercases and trims a vehicle token into its canonical
// form. The upstream routing API is case-sensitive, so every token that
// passed the case-insensitive allow-list check must be normalized before it
// goes on the wire.
func NormalizeVehicle(token string) Vehicle {
	return Vehicle(strings.ToLower(strings.TrimSpace(token)))
}

// VehicleSet is an allow-list of travel modes. Membership checks are
// case-insensitive on the incoming token; the stored tokens keep their
// configured order for presentation.
type VehicleSet struct {
	order   []Vehicle
	members map[Vehicle]struct{}
}

// NewVehicleSet builds an allow-list from tokens, dropping blanks and
// duplicates while preserving order.
func NewVehicleSet(tokens ...string) VehicleSet {
	set := VehicleSet{members: make(map[Vehicle]struct{}, len(tokens))}
	for _, t := range tokens {
		v := Vehicle(strings.ToLower(strings.TrimSpace(t)))
		if v == "" {
			continue
		}
		if _, dup := set.members[v]; dup {
			continue
		}
		set.members[v] = struct{}{}
		set.order = append(set.order, v)
	}
	return set
}

// DefaultVehicles is the allow-list the desktop variants expose.
func DefaultVehicles() VehicleSet {
	return NewVehicleSet("car", "bike", "foot")
}

// ExtendedVehicles is the wider allow-list of the command-line variant.
func ExtendedVehicles() VehicleSet {
	return NewVehicleSet("car", "bike", "foot", "scooter", "truck", "small_truck")
}

// Contains reports whether the vehicle is a member of the allow-list.
func (s VehicleSet) Contains(v Vehicle) bool {
	_, ok := s.members[Vehicle(strings.ToLower(string(v)))]
	return ok
}

// List returns the allowed tokens in configured order.
func (s VehicleSet) List() []string {
	out := make([]string, len(s.order))
	for i, v := range s.order {
		out[i] = string(v)
	}
	return out
}

// Len returns the number of allowed tokens.
func (s VehicleSet) Len() int {
	return len(s.order)
}

// ValidateVehicle checks token membership in the allow-list.
func ValidateVehicle(token string, allowed VehicleSet) error {
	if !allowed.Contains(Vehicle(token)) {
		return NewError(KindUnsupportedMode,
			"unsupported vehicle %q, must be one of: %s", token, strings.Join(allowed.List(), ", "))
	}
	return nil
}
