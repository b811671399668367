// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"sort"

	"github.com/canonical/tenant-session/internal/types"
)

// AdminList is the fixed allow-list of site administrators. It is consulted
// before any directory lookup and is never stored in the directory.
type AdminList struct {
	emails map[string]struct{}
}

func NewAdminList(emails ...string) *AdminList {
	l := new(AdminList)
	l.emails = make(map[string]struct{}, len(emails))

	for _, e := range emails {
		if e = types.NormalizeEmail(e); e != "" {
			l.emails[e] = struct{}{}
		}
	}

	return l
}

// Contains is safe to call on a nil list.
func (l *AdminList) Contains(email string) bool {
	if l == nil {
		return false
	}

	e := types.NormalizeEmail(email)
	if e == "" {
		return false
	}

	_, ok := l.emails[e]
	return ok
}

func (l *AdminList) Emails() []string {
	if l == nil {
		return nil
	}

	emails := make([]string, 0, len(l.emails))
	for e := range l.emails {
		emails = append(emails, e)
	}
	sort.Strings(emails)

	return emails
}
