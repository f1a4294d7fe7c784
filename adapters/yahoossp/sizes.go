package yahoossp

import (
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/xorcare/pointer"
)

// transformSizes turns the sizes of an ad unit into formats. Both a single [w, h] pair and a list
// of pairs are accepted. Anything else yields no formats.
func transformSizes(sizes []byte) []format {
	value, dataType, _, err := jsonparser.Get(sizes)
	if err != nil || dataType != jsonparser.Array {
		return []format{}
	}

	if isSinglePair(value) {
		return []format{getSize(value, jsonparser.Array)}
	}

	formats := []format{}
	jsonparser.ArrayEach(value, func(size []byte, sizeType jsonparser.ValueType, _ int, _ error) {
		formats = append(formats, getSize(size, sizeType))
	})
	return formats
}

// isSinglePair reports whether sizes is a flat [w, h] pair rather than a list of pairs.
func isSinglePair(sizes []byte) bool {
	count := 0
	firstIsArray := false
	jsonparser.ArrayEach(sizes, func(_ []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if count == 0 {
			firstIsArray = dataType == jsonparser.Array
		}
		count++
	})
	return count == 2 && !firstIsArray
}

// getSize reads the first two entries of a pair. Entries which do not read as an integer, and
// sizes which are not a pair at all, give nil coordinates.
func getSize(size []byte, dataType jsonparser.ValueType) format {
	if dataType != jsonparser.Array {
		return format{}
	}

	var f format
	index := 0
	jsonparser.ArrayEach(size, func(value []byte, valueType jsonparser.ValueType, _ int, _ error) {
		switch index {
		case 0:
			f.W = parseInt(value, valueType)
		case 1:
			f.H = parseInt(value, valueType)
		}
		index++
	})
	return f
}

// parseInt reads a loosely typed integer. Numbers are truncated towards zero, strings are read up
// to the first character that is not part of the number, and an array reads as its first entry.
// nil means there was no integer to read.
func parseInt(value []byte, dataType jsonparser.ValueType) *int64 {
	switch dataType {
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return parseNumber(f)
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil
		}
		return parseIntPrefix(s)
	case jsonparser.Array:
		var first *int64
		found := false
		jsonparser.ArrayEach(value, func(entry []byte, entryType jsonparser.ValueType, _ int, _ error) {
			if !found {
				first = parseInt(entry, entryType)
				found = true
			}
		})
		return first
	}
	return nil
}

// parseNumber truncates f towards zero. Magnitudes that print in exponent notation are read from
// their printed form, so 1e30 reads as 1. Values outside the int64 range read as nothing.
func parseNumber(f float64) *int64 {
	abs := math.Abs(f)
	if abs >= 1e21 || (abs > 0 && abs < 1e-6) {
		return parseIntPrefix(strconv.FormatFloat(f, 'g', -1, 64))
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return nil
	}
	return pointer.Int64(int64(t))
}

// parseIntPrefix reads an optionally signed decimal or 0x-prefixed hexadecimal integer at the
// start of s, after any leading white space.
func parseIntPrefix(s string) *int64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r\u00a0\ufeff")

	sign := int64(1)
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return nil
	}

	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return nil
	}
	return pointer.Int64(sign * n)
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
