// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

// Permissions maps an application section to the actions allowed in it.
type Permissions map[string]map[string]bool

func (p Permissions) Can(section, action string) bool {
	return p[section][action]
}

func (p Permissions) clone() Permissions {
	c := make(Permissions, len(p))
	for section, actions := range p {
		c[section] = make(map[string]bool, len(actions))
		for action, allowed := range actions {
			c[section][action] = allowed
		}
	}
	return c
}

var defaultPermissions = Permissions{
	"dashboard":   {"view": true},
	"playbook":    {"view": true, "edit": false, "create": false, "delete": false},
	"game_plan":   {"view": true, "edit": false},
	"depth_chart": {"view": true, "edit": false},
	"practice":    {"view": true, "edit": false},
	"wristband":   {"view": true, "edit": false},
	"roster":      {"view": true, "edit": false},
	"staff":       {"view": true, "edit": false},
	"settings":    {"view": false, "edit": false},
	"admin":       {"view": false},
}

var rolePermissions = map[string]Permissions{
	"Head Coach": {
		"playbook":    {"view": true, "edit": true, "create": true, "delete": true},
		"game_plan":   {"view": true, "edit": true},
		"depth_chart": {"view": true, "edit": true},
		"practice":    {"view": true, "edit": true},
		"wristband":   {"view": true, "edit": true},
		"roster":      {"view": true, "edit": true},
		"staff":       {"view": true, "edit": true},
		"settings":    {"view": true, "edit": true},
	},
	"Team Admin": {
		"playbook":    {"view": true, "edit": true, "create": true, "delete": true},
		"game_plan":   {"view": true, "edit": true},
		"depth_chart": {"view": true, "edit": true},
		"practice":    {"view": true, "edit": true},
		"wristband":   {"view": true, "edit": true},
		"roster":      {"view": true, "edit": true},
		"staff":       {"view": true, "edit": true},
		"settings":    {"view": true, "edit": true},
	},
	"Offensive Coordinator": {
		"playbook":    {"view": true, "edit": true, "create": true},
		"game_plan":   {"view": true, "edit": true},
		"depth_chart": {"view": true, "edit": true},
		"practice":    {"view": true, "edit": true},
		"wristband":   {"view": true, "edit": true},
	},
	"Position Coach": {
		"depth_chart": {"view": true, "edit": true},
		"practice":    {"view": true, "edit": true},
	},
}

// ComputePermissions merges the grants of every known role over the
// defaults, an action allowed by any role is allowed. Site admins are
// allowed everything.
func ComputePermissions(roles []string, siteAdmin bool) Permissions {
	p := defaultPermissions.clone()

	for _, role := range roles {
		for section, actions := range rolePermissions[role] {
			if p[section] == nil {
				p[section] = make(map[string]bool)
			}
			for action, allowed := range actions {
				if allowed {
					p[section][action] = true
				}
			}
		}
	}

	if siteAdmin {
		for _, actions := range p {
			for action := range actions {
				actions[action] = true
			}
		}
	}

	return p
}
