package tables

import (
	"strconv"
	"time"
)

const sep = '|'

// appendKeyedName renders TPC-style keyed names like "Customer#000000042".
func appendKeyedName(dst []byte, prefix string, key int64) []byte {
	dst = append(dst, prefix...)
	return appendPadded(dst, key, 9)
}

func appendPadded(dst []byte, v int64, width int) []byte {
	pow := int64(1)
	for i := 1; i < width; i++ {
		pow *= 10
	}
	for p := pow; p > 1 && v < p; p /= 10 {
		dst = append(dst, '0')
	}
	return strconv.AppendInt(dst, v, 10)
}

const timestampLayout = "2006-01-02 15:04:05"

func appendTimestamp(dst []byte, unixSec int64) []byte {
	return time.Unix(unixSec, 0).UTC().AppendFormat(dst, timestampLayout)
}

func appendDate(dst []byte, epochDay int64) []byte {
	return time.Unix(epochDay*86_400, 0).UTC().AppendFormat(dst, "2006-01-02")
}

func timestampString(unixSec int64) string {
	return string(appendTimestamp(nil, unixSec))
}

func dateString(epochDay int64) string {
	return string(appendDate(nil, epochDay))
}
