package method

// Method is a closed enumeration of the HTTP methods recognized on the
// wire. Methods outside the Implemented subset parse fine but have no
// route behavior and are answered with 501.
type Method uint8

const (
	Unknown Method = iota
	OPTIONS
	GET
	HEAD
	POST
	PUT
	DELETE
	TRACE
	CONNECT
)

var names = [...]string{"UNKNOWN", "OPTIONS", "GET", "HEAD", "POST", "PUT", "DELETE", "TRACE", "CONNECT"}

func (m Method) String() string {
	if int(m) >= len(names) {
		return names[Unknown]
	}

	return names[m]
}

// Parse matches the token exactly and case-sensitively, as the grammar
// demands. Anything else, lower-cased methods included, is Unknown.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		} else if str == "HEAD" {
			return HEAD
		}
	case 5:
		if str == "TRACE" {
			return TRACE
		}
	case 6:
		if str == "DELETE" {
			return DELETE
		}
	case 7:
		if str == "OPTIONS" {
			return OPTIONS
		} else if str == "CONNECT" {
			return CONNECT
		}
	}

	return Unknown
}

// Implemented lists the methods routes are defined for, in the order they
// are reported by the allow header.
var Implemented = []Method{GET, HEAD, POST, OPTIONS}

// AllowString renders the Implemented list for the allow header.
func AllowString() string {
	out := ""
	for i, m := range Implemented {
		if i > 0 {
			out += ", "
		}
		out += m.String()
	}

	return out
}
