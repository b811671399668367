// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
)

// NormalizeEmail is applied before every email comparison or keyed lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestKey is the document key of an access request. Dots are substituted
// because the key doubles as a path segment in the document store.
func RequestKey(email string) string {
	return strings.ReplaceAll(NormalizeEmail(email), ".", "_")
}
