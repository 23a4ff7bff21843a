// Package datecode implements the packed 3-byte date representation used in
// the Digital Seal header (issue date, signature date) and in any
// date-valued feature.
package datecode

import (
	"fmt"

	"github.com/jabcode/jabpro/errs"
)

// Date is a calendar date as printed on the document: year is 4 digits,
// month and day are 1-12 and 1-31 respectively.
type Date struct {
	Year  int
	Month int
	Day   int
}

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// isLeap reports whether year is a Gregorian leap year.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Validate checks the date against the Digital Seal calendar bounds: year in
// [1850, 2030], month in [1,12], day valid for (month, year) with the
// Gregorian leap-year rule for February.
func (d Date) Validate() error {
	if d.Year < 1850 || d.Year > 2030 {
		return fmt.Errorf("%w: year %d outside [1850, 2030]", errs.ErrInvalidDate, d.Year)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d outside [1, 12]", errs.ErrInvalidDate, d.Month)
	}

	max := daysInMonth[d.Month-1]
	if d.Month == 2 && isLeap(d.Year) {
		max = 29
	}
	if d.Day < 1 || d.Day > max {
		return fmt.Errorf("%w: day %d invalid for %04d-%02d", errs.ErrInvalidDate, d.Day, d.Year, d.Month)
	}

	return nil
}

// Encode packs d into its 3-byte big-endian MMDDYYYY integer form. d must be
// calendar-valid; the packed integer always fits in 24 bits since MMDDYYYY
// never exceeds 12312030.
func Encode(d Date) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	packed := d.Month*1000000 + d.Day*10000 + d.Year
	if packed > 0xFFFFFF {
		return nil, fmt.Errorf("%w: packed date %d overflows 24 bits", errs.ErrDateEncodingFailed, packed)
	}

	return []byte{byte(packed >> 16), byte(packed >> 8), byte(packed)}, nil
}

// Decode unpacks a 3-byte big-endian MMDDYYYY integer into a Date and
// validates it.
func Decode(b []byte) (Date, error) {
	if len(b) != 3 {
		return Date{}, fmt.Errorf("%w: date codec needs exactly 3 bytes, got %d", errs.ErrInvalidDate, len(b))
	}

	packed := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
	month := packed / 1000000
	day := (packed / 10000) % 100
	year := packed % 10000

	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}

	return d, nil
}
