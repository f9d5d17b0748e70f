package validation

import (
	"strings"
	"testing"
	"time"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain name", "Jane Doe", true},
		{"with apostrophe", "O'Neil", true},
		{"with dot and hyphen", "J. Smith-Lee", true},
		{"too short", "A", false},
		{"digits", "Jane2 Doe", false},
		{"empty", "", false},
		{"only spaces", "   ", false},
	}
	for _, tt := range tests {
		if got := FullName(tt.in); got != tt.want {
			t.Errorf("%s: FullName(%q) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	for age, want := range map[int]bool{17: false, 18: true, 40: true, 65: true, 66: false, 0: false, -1: false} {
		if got := Age(age); got != want {
			t.Errorf("Age(%d) = %v, want %v", age, got, want)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"987654321", false},   // 9 digits
		{"98765432101", false}, // 11 digits
		{"98765abc10", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Phone(tt.in); got != tt.want {
			t.Errorf("Phone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"donor@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"no-at-sign", false},
		{"a@b", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBloodGroup(t *testing.T) {
	for _, g := range BloodGroups {
		if !BloodGroup(g) {
			t.Errorf("BloodGroup(%q) = false, want true", g)
		}
	}
	if !BloodGroup("o+") {
		t.Error("BloodGroup should be case-insensitive on input")
	}
	for _, g := range []string{"C+", "AB", "", "O "} {
		if BloodGroup(g) {
			t.Errorf("BloodGroup(%q) = true, want false", g)
		}
	}
}

func TestUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want bool
	}{
		{0.5, true},
		{1, true},
		{2.5, true},
		{0, false},
		{-1, false},
		{0.3, false},
		{1.25, false},
	}
	for _, tt := range tests {
		if got := Units(tt.in); got != tt.want {
			t.Errorf("Units(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAddress(t *testing.T) {
	long := strings.Repeat("a", 200)
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain address", "12 Long Street, Springfield", true},
		{"too short", "short", false},
		{"exactly 200 chars", long, true},
		{"201 chars", long + "a", false},
		{"trailing whitespace past 200 raw", long + "   ", true},
		{"only whitespace", strings.Repeat(" ", 20), false},
	}
	for _, tt := range tests {
		if got := Address(tt.in); got != tt.want {
			t.Errorf("%s: Address(...) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPastOrToday(t *testing.T) {
	if !PastOrToday(time.Now().AddDate(0, 0, -1)) {
		t.Error("yesterday should be accepted")
	}
	if !PastOrToday(time.Now()) {
		t.Error("today should be accepted")
	}
	if PastOrToday(time.Now().AddDate(0, 0, 2)) {
		t.Error("a future date should be rejected")
	}
}

func TestUsernameAndPassword(t *testing.T) {
	if Username("abc") || !Username("admin1") {
		t.Error("username must be at least 6 characters")
	}
	if Password("abc1") {
		t.Error("short password accepted")
	}
	if Password("abcdef") {
		t.Error("password without digit accepted")
	}
	if !Password("abcde1") {
		t.Error("valid password rejected")
	}
}

func TestRoleAndGender(t *testing.T) {
	for _, r := range Roles {
		if !Role(r) {
			t.Errorf("Role(%q) = false, want true", r)
		}
	}
	if Role("Admin") || Role("") {
		t.Error("unknown role accepted")
	}
	if !Gender("Other") || Gender("other") {
		t.Error("gender enumeration is case-sensitive")
	}
}
