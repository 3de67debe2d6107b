//go:build !cgo

package external

// PostalComponents các thành phần địa chỉ libpostal tách được từ text thô.
type PostalComponents struct {
	House, Road, Unit, Level, Ward, City, Province string
	Coverage                                       float64
}

// ParsePostal no-op khi build không có cgo/libpostal: prompt AI sẽ không
// được bổ sung thành phần đã parse.
func ParsePostal(string) PostalComponents { return PostalComponents{} }
