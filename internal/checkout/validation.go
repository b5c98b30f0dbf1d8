package checkout

import (
	"regexp"
	"strings"
)

// Request carries the checkout form. Card fields are validated and the
// last four digits displayed, never stored in full.
type Request struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`

	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe      = regexp.MustCompile(`^\d{5}$`)
	cardRe     = regexp.MustCompile(`^\d{16}$`)
	expiryRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe      = regexp.MustCompile(`^\d{3,4}$`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

func stripNonDigits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// Validate returns a field→message map, empty when the request is valid.
func Validate(req *Request) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(req.FirstName) == "" {
		errs["first_name"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs["last_name"] = "Last name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailRe.MatchString(req.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if len(stripNonDigits(req.Phone)) < 10 {
		errs["phone"] = "Please enter a valid phone number"
	}

	if strings.TrimSpace(req.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(req.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(req.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(req.ZipCode) == "" {
		errs["zip_code"] = "ZIP code is required"
	} else if !zipRe.MatchString(req.ZipCode) {
		errs["zip_code"] = "Please enter a valid 5-digit ZIP code"
	}

	if strings.TrimSpace(req.CardNumber) == "" {
		errs["card_number"] = "Card number is required"
	} else if !cardRe.MatchString(stripNonDigits(req.CardNumber)) {
		errs["card_number"] = "Please enter a valid 16-digit card number"
	}
	if strings.TrimSpace(req.CardName) == "" {
		errs["card_name"] = "Cardholder name is required"
	}
	if strings.TrimSpace(req.ExpiryDate) == "" {
		errs["expiry_date"] = "Expiry date is required"
	} else if !expiryRe.MatchString(req.ExpiryDate) {
		errs["expiry_date"] = "Please use MM/YY format"
	}
	if strings.TrimSpace(req.CVV) == "" {
		errs["cvv"] = "CVV is required"
	} else if !cvvRe.MatchString(req.CVV) {
		errs["cvv"] = "Please enter a valid CVV"
	}

	return errs
}
