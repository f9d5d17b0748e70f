package validation

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// Field rules enforced server-side. The browser forms run the same checks
// before submitting, but nothing here trusts the client.

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\d{10}$`)
	fullNameRegex = regexp.MustCompile(`^[a-zA-Z\s.'-]+$`)
	digitRegex    = regexp.MustCompile(`\d`)
)

// BloodGroups is the fixed set of accepted blood groups.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Genders is the fixed set of accepted genders.
var Genders = []string{"Male", "Female", "Other"}

// Roles is the fixed set of admin roles.
var Roles = []string{"Manager", "Assistant Manager", "Account Manager", "Support Staff"}

// FullName checks 2-100 chars of letters, spaces, dots, apostrophes, hyphens.
func FullName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return false
	}
	return fullNameRegex.MatchString(name)
}

// Age checks the donor/recipient age window.
func Age(age int) bool {
	return age >= 18 && age <= 65
}

// Gender checks membership in the gender enumeration.
func Gender(gender string) bool {
	return contains(Genders, gender)
}

// BloodGroup checks membership in the blood group enumeration.
func BloodGroup(group string) bool {
	return contains(BloodGroups, strings.ToUpper(group))
}

// Phone checks for exactly 10 digits.
func Phone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// Email checks syntax and a 100 char cap.
func Email(email string) bool {
	if len(email) > 100 {
		return false
	}
	return emailRegex.MatchString(email)
}

// Address checks 10-200 chars after trimming.
func Address(address string) bool {
	trimmed := strings.TrimSpace(address)
	return len(trimmed) >= 10 && len(trimmed) <= 200
}

// PastOrToday rejects dates in the future (date precision, local time).
func PastOrToday(t time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return !t.After(today)
}

// Units checks that blood units are positive and fall on a 0.5 step.
func Units(units float64) bool {
	if units <= 0 {
		return false
	}
	scaled := units * 2
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// Role checks membership in the role enumeration.
func Role(role string) bool {
	return contains(Roles, role)
}

// Username requires at least 6 characters.
func Username(username string) bool {
	return len(strings.TrimSpace(username)) >= 6
}

// Password requires at least 6 characters including a digit.
func Password(password string) bool {
	return len(password) >= 6 && digitRegex.MatchString(password)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
