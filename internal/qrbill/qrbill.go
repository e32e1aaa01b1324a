// Package qrbill models the data required to render a Swiss QR payment slip.
// It validates construction only; rendering is a downstream concern.
package qrbill

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrIBANRequired         = errors.New("qrbill_iban_required")
	ErrCreditorNameRequired = errors.New("qrbill_creditor_name_required")
	ErrAmountRequired       = errors.New("qrbill_amount_required")
	ErrInvalidIBAN          = errors.New("qrbill_iban_invalid")
	ErrInvalidReference     = errors.New("qrbill_reference_invalid")
)

type Creditor struct {
	IBAN    string `json:"iban"`
	Name    string `json:"creditorName"`
	Address string `json:"creditorAddress"`
	City    string `json:"creditorCity"`
	ZipCode string `json:"creditorZipCode"`
	Country string `json:"creditorCountry"`
}

type Debtor struct {
	Name    string `json:"debtorName"`
	Address string `json:"debtorAddress"`
	City    string `json:"debtorCity"`
	ZipCode string `json:"debtorZipCode"`
}

// Data is the payment-slip payload persisted on an invoice.
type Data struct {
	IBAN            string          `json:"iban"`
	CreditorName    string          `json:"creditorName"`
	CreditorAddress string          `json:"creditorAddress"`
	CreditorCity    string          `json:"creditorCity"`
	CreditorZipCode string          `json:"creditorZipCode"`
	CreditorCountry string          `json:"creditorCountry"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	DebtorName      *string         `json:"debtorName,omitempty"`
	DebtorAddress   *string         `json:"debtorAddress,omitempty"`
	DebtorCity      *string         `json:"debtorCity,omitempty"`
	DebtorZipCode   *string         `json:"debtorZipCode,omitempty"`
	Reference       *string         `json:"reference,omitempty"`
}

// Build assembles and validates the QR-bill payload. Creditor identity and a
// positive amount are mandatory; the debtor and the payment reference are
// optional but validated when present. Fields pass through unmodified apart
// from whitespace trimming on the IBAN and reference.
func Build(creditor Creditor, debtor *Debtor, amount decimal.Decimal, currency string, reference string) (*Data, error) {
	iban := normalize(creditor.IBAN)
	if iban == "" {
		return nil, ErrIBANRequired
	}
	if !validIBAN(iban) {
		return nil, ErrInvalidIBAN
	}
	if strings.TrimSpace(creditor.Name) == "" {
		return nil, ErrCreditorNameRequired
	}
	if !amount.IsPositive() {
		return nil, ErrAmountRequired
	}

	country := creditor.Country
	if country == "" {
		country = "CH"
	}
	if currency == "" {
		currency = "CHF"
	}

	data := &Data{
		IBAN:            iban,
		CreditorName:    creditor.Name,
		CreditorAddress: creditor.Address,
		CreditorCity:    creditor.City,
		CreditorZipCode: creditor.ZipCode,
		CreditorCountry: country,
		Amount:          amount,
		Currency:        currency,
	}

	if debtor != nil {
		data.DebtorName = optional(debtor.Name)
		data.DebtorAddress = optional(debtor.Address)
		data.DebtorCity = optional(debtor.City)
		data.DebtorZipCode = optional(debtor.ZipCode)
	}

	if ref := normalize(reference); ref != "" {
		if !validReference(ref) {
			return nil, ErrInvalidReference
		}
		data.Reference = &ref
	}

	return data, nil
}

// Validate checks an externally supplied payload against the same rules
// Build enforces.
func Validate(data *Data) error {
	if data == nil {
		return nil
	}
	var reference string
	if data.Reference != nil {
		reference = *data.Reference
	}
	_, err := Build(Creditor{
		IBAN:    data.IBAN,
		Name:    data.CreditorName,
		Address: data.CreditorAddress,
		City:    data.CreditorCity,
		ZipCode: data.CreditorZipCode,
		Country: data.CreditorCountry,
	}, nil, data.Amount, data.Currency, reference)
	return err
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func normalize(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// validIBAN implements the ISO 13616 mod-97 check: move the first four
// characters to the end, expand letters to two-digit numbers and verify the
// remainder modulo 97 equals 1.
func validIBAN(iban string) bool {
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			remainder = (remainder*100 + v) % 97
		default:
			return false
		}
	}
	return remainder == 1
}

// validReference accepts the two structured forms used on Swiss payment
// slips: a 27-digit QR reference (recursive mod-10 check digit) or an
// ISO 11649 creditor reference ("RF..", mod-97).
func validReference(ref string) bool {
	if strings.HasPrefix(ref, "RF") {
		return validCreditorReference(ref)
	}
	return validQRReference(ref)
}

var mod10Table = [10]int{0, 9, 4, 6, 8, 2, 7, 1, 3, 5}

func validQRReference(ref string) bool {
	if len(ref) != 27 {
		return false
	}
	carry := 0
	for _, r := range ref[:26] {
		if r < '0' || r > '9' {
			return false
		}
		carry = mod10Table[(carry+int(r-'0'))%10]
	}
	check := ref[26]
	if check < '0' || check > '9' {
		return false
	}
	return (10-carry)%10 == int(check-'0')
}

func validCreditorReference(ref string) bool {
	if len(ref) < 5 || len(ref) > 25 {
		return false
	}
	rearranged := ref[4:] + ref[:4]
	remainder := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			remainder = (remainder*100 + int(r-'A') + 10) % 97
		default:
			return false
		}
	}
	return remainder == 1
}

// QRReference renders a 26-digit payload with its mod-10 check digit
// appended. The payload is left-padded with zeros.
func QRReference(payload string) (string, error) {
	payload = normalize(payload)
	if payload == "" || len(payload) > 26 {
		return "", ErrInvalidReference
	}
	for _, r := range payload {
		if r < '0' || r > '9' {
			return "", ErrInvalidReference
		}
	}
	padded := strings.Repeat("0", 26-len(payload)) + payload
	carry := 0
	for _, r := range padded {
		carry = mod10Table[(carry+int(r-'0'))%10]
	}
	return padded + string(rune('0'+(10-carry)%10)), nil
}
