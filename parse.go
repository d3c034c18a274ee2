package pokedex

import (
	"strconv"
	"strings"
)

// ParseIntOrDefault parses s as a base-10 integer after trimming
// whitespace. It returns def when s is blank or not a number. It never
// fails: conversion problems are absorbed into the default.
func ParseIntOrDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseRangeOrDefault parses s as a hyphen-separated numeric range.
// Without a separator the single parsed value is used for both ends.
// Each side independently falls back to def; blank input yields
// (def, def).
func ParseRangeOrDefault(s string, def int) (min, max int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, def
	}
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		n := ParseIntOrDefault(lo, def)
		return n, n
	}
	return ParseIntOrDefault(lo, def), ParseIntOrDefault(hi, def)
}
