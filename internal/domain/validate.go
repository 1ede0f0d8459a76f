package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

// ValidateEmail checks the structural shape of an email address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePhone checks that phone parses as a valid international number.
// The number must carry its country code; no default region is assumed.
func ValidatePhone(phone string) error {
	parsed, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateBirthday rejects dates in the future.
func ValidateBirthday(birthday time.Time) error {
	if birthday.After(time.Now()) {
		return ErrBirthdayInFuture
	}
	return nil
}

// ValidateUser runs the field validators over a user record. Optional fields
// are only checked when present.
func ValidateUser(u *User) error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.Phone != nil {
		if err := ValidatePhone(*u.Phone); err != nil {
			return err
		}
	}
	if u.Birthday != nil {
		if err := ValidateBirthday(*u.Birthday); err != nil {
			return err
		}
	}
	return nil
}
