//go:build cgo

package external

import (
	"strings"

	"github.com/openvenues/gopostal/expand"
	"github.com/openvenues/gopostal/parser"
)

// PostalComponents các thành phần địa chỉ libpostal tách được từ text thô.
// Coverage là tỉ lệ token được gán nhãn, dùng để đánh giá độ tin cậy.
type PostalComponents struct {
	House, Road, Unit, Level, Ward, City, Province string
	Coverage                                       float64
}

// ParsePostal expand rồi parse địa chỉ bằng libpostal (tiếng Việt).
func ParsePostal(raw string) PostalComponents {
	opts := expand.DefaultOptions()
	opts.Languages = []string{"vi"}
	exps := expand.ExpandAddress(raw, opts)
	best := raw
	if len(exps) > 0 {
		best = exps[0]
	}
	comps := parser.ParseAddress(best)
	covered, total := 0, len(strings.Fields(best))
	pc := PostalComponents{}
	for _, c := range comps {
		switch c.Label {
		case "house_number":
			pc.House = c.Value
		case "road":
			pc.Road = c.Value
		case "unit":
			pc.Unit = c.Value
		case "level":
			pc.Level = c.Value
		case "suburb":
			pc.Ward = c.Value
		case "city":
			pc.City = c.Value
		case "state":
			pc.Province = c.Value
		}
		covered += len(strings.Fields(c.Value))
	}
	if total > 0 {
		pc.Coverage = float64(covered) / float64(total)
	}
	return pc
}
