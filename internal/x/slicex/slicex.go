// SPDX-License-Identifier: Apache-2.0

// Package slicex carries small generic slice helpers used by the matcher
// and normalizer.
package slicex

// Filter returns the elements of src for which apply returns true.
func Filter[T any](src []T, apply func(T) bool) []T {
	var dst []T

	for _, n := range src {
		if apply(n) {
			dst = append(dst, n)
		}
	}

	return dst
}

// Any reports whether apply returns true for at least one element of src.
func Any[T any](src []T, apply func(T) bool) bool {
	for _, n := range src {
		if apply(n) {
			return true
		}
	}

	return false
}

// All reports whether apply returns true for every element of src.
func All[T any](src []T, apply func(T) bool) bool {
	for _, n := range src {
		if !apply(n) {
			return false
		}
	}

	return true
}
