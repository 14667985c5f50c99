// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// Layouts used by the time transforms.
const (
	ShortTimeLayout = "2006-01-02 15:04 MST"
	LongTimeLayout  = "Mon 02 Jan 15:04 MST"
)

var lengthRe = regexp.MustCompile(`-?\d+`)

// now is swapped in tests.
var now = time.Now

// Attr represents each of the keys to be included in the output. Keys are
// gjson paths into one row of the dataset.
type Attr struct {
	// The JSON key to extract from each row.
	Key string
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool
	// The key to use in the output. This is also the column title when
	// output=text.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
	// Location is the display timezone for the t/T transforms.
	Location *time.Location `yaml:"-"`
}

// Transform applies TransformSpec to a string value. The spec characters are:
//
//	t  RFC3339 timestamp rendered in Location, short form
//	T  same, with the weekday
//	h  timestamp relative to now ("in 3 days", "2 hours ago")
//	l  lower case
//	u  upper case
//	N  truncate to N characters; -N elides the middle
//
// Non-string values pass through unchanged.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		return value
	}

	result = a.transformTime(result)

	// We need to know which case transformation appears last. This covers the
	// case where there has been a global case transformation prepended to the
	// attr's transformation and, thus, allows the attr's to carry more weight.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Take the last (overriding) length so a specific attr beats a global one.
	if match := lengthRe.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		result = truncate(result, l)
	}

	return result
}

func (a *Attr) transformTime(value string) string {
	relative := strings.Contains(a.TransformSpec, "h")
	short := strings.Contains(a.TransformSpec, "t")
	long := strings.Contains(a.TransformSpec, "T")
	if !relative && !short && !long {
		return value
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Debugf("not a timestamp, skipping time transform: %q", value)
		return value
	}

	if relative {
		return humanize.RelTime(t, now(), "ago", "from now")
	}

	loc := a.Location
	if loc == nil {
		loc = time.UTC
	}
	if long {
		return t.In(loc).Format(LongTimeLayout)
	}
	return t.In(loc).Format(ShortTimeLayout)
}

// truncate limits s to abs(l) characters. A negative l keeps both ends and
// joins them with "..".
func truncate(s string, l int) string {
	abs := l
	if abs < 0 {
		abs = -abs
	}
	r := []rune(s)
	if abs == 0 || len(r) <= abs {
		return s
	}
	if l > 0 {
		return string(r[:l])
	}
	keep := abs/2 - 1
	if keep < 1 {
		return string(r[:abs])
	}
	return string(r[:keep]) + ".." + string(r[len(r)-keep:])
}

type AttrList []Attr

// Return a string representation of the AttrList.  This should match the format
// of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses each spec from the --attrs flag and adds it to the AttrList.
//
// There are three : delimited fields in each spec. The first is the key to
// extract, the second the output key and the third the transformation spec.
// The latter two are optional and the output key defaults to the last
// segment of the key. A leading ! keeps the attribute for filtering and
// sorting but hides it from output.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		fields := strings.Split(spec, ":")

		attr := Attr{Include: true}
		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attribute in %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		} else if len(fields) == 1 {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// An attr with the same output key (one of the command defaults, or the
		// user double-entered it) is updated in place.
		for i := range *a {
			if (*a)[i].OutputKey == attr.OutputKey {
				(*a)[i].Key = attr.Key
				(*a)[i].Include = attr.Include
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts the spec of the "*" attr into the front of
// all attrs in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

// SetLocation sets the display timezone on every attr.
func (a *AttrList) SetLocation(loc *time.Location) {
	for i := range *a {
		(*a)[i].Location = loc
	}
}

func (a *AttrList) Type() string {
	return "list"
}
