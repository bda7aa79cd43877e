// SPDX-License-Identifier: Apache-2.0

// Package stringx provides zero-copy conversions between strings and byte
// slices for logging raw file contents without an extra allocation.
package stringx

import "unsafe"

func ToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

func ToBytes(str string) []byte {
	return unsafe.Slice(unsafe.StringData(str), len(str))
}
