package netft

import "testing"

func TestForceUnitName(t *testing.T) {
	tests := []struct {
		code uint8
		want string
	}{
		{1, "Pound"},
		{2, "Newton"},
		{3, "Kilopound"},
		{4, "Kilonewton"},
		{5, "Kilogram"},
		{6, "Gram"},
		{0, UnknownUnit},
		{7, UnknownUnit},
		{255, UnknownUnit},
	}
	for _, tt := range tests {
		if got := ForceUnitName(tt.code); got != tt.want {
			t.Errorf("ForceUnitName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestTorqueUnitName(t *testing.T) {
	tests := []struct {
		code uint8
		want string
	}{
		{1, "Pound-inch"},
		{2, "Pound-foot"},
		{3, "Newton-meter"},
		{4, "Newton-millimeter"},
		{5, "Kilogram-centimeter"},
		{6, "Kilonewton-meter"},
		{0, UnknownUnit},
		{7, UnknownUnit},
		{255, UnknownUnit},
	}
	for _, tt := range tests {
		if got := TorqueUnitName(tt.code); got != tt.want {
			t.Errorf("TorqueUnitName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestUnitName(t *testing.T) {
	if got := UnitName(2, true); got != "Newton" {
		t.Errorf("UnitName(2, force) = %q, want Newton", got)
	}
	if got := UnitName(3, false); got != "Newton-meter" {
		t.Errorf("UnitName(3, torque) = %q, want Newton-meter", got)
	}
	if got := UnitName(9, true); got != UnknownUnit {
		t.Errorf("UnitName(9, force) = %q, want %q", got, UnknownUnit)
	}
	if got := UnitName(9, false); got != UnknownUnit {
		t.Errorf("UnitName(9, torque) = %q, want %q", got, UnknownUnit)
	}
}
