package netft

// UnknownUnit is the sentinel name for unit codes outside the tables.
const UnknownUnit = "Unknown"

// Unit code tables from the Net F/T calibration record. Codes are
// sensor-assigned and fixed at 1-6 for both axis groups.
var forceUnits = map[uint8]string{
	1: "Pound",
	2: "Newton",
	3: "Kilopound",
	4: "Kilonewton",
	5: "Kilogram",
	6: "Gram",
}

var torqueUnits = map[uint8]string{
	1: "Pound-inch",
	2: "Pound-foot",
	3: "Newton-meter",
	4: "Newton-millimeter",
	5: "Kilogram-centimeter",
	6: "Kilonewton-meter",
}

// ForceUnitName resolves a force unit code to its name. Unrecognised
// codes return UnknownUnit; the lookup never fails.
func ForceUnitName(code uint8) string {
	if name, ok := forceUnits[code]; ok {
		return name
	}
	return UnknownUnit
}

// TorqueUnitName resolves a torque unit code to its name.
func TorqueUnitName(code uint8) string {
	if name, ok := torqueUnits[code]; ok {
		return name
	}
	return UnknownUnit
}

// UnitName resolves a unit code with an axis-type flag, for callers
// that carry the code and axis group together.
func UnitName(code uint8, isForce bool) string {
	if isForce {
		return ForceUnitName(code)
	}
	return TorqueUnitName(code)
}
