// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system started", zap.String("event", "sys_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system stopped", zap.String("event", "sys_shutdown"))
}

func (s *SecurityLogger) AuthnLoginSuccess(userID string) {
	s.l.Info(
		fmt.Sprintf("user %s login successfully", userID),
		zap.String("event", fmt.Sprintf("authn_login_success:%s", userID)),
	)
}

func (s *SecurityLogger) AuthnLoginFail(userID string) {
	s.l.Warn(
		fmt.Sprintf("user %s login failed", userID),
		zap.String("event", fmt.Sprintf("authn_login_fail:%s", userID)),
	)
}

func (s *SecurityLogger) AuthnLogout(userID string) {
	s.l.Info(
		fmt.Sprintf("user %s logged out", userID),
		zap.String("event", fmt.Sprintf("authn_logout:%s", userID)),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.l.Warn(
		fmt.Sprintf("user %s attempted to access %s without entitlement", userID, resource),
		zap.String("event", fmt.Sprintf("authz_fail:%s,%s", userID, resource)),
	)
}

func (s *SecurityLogger) AdminAction(userID, action, resource string) {
	s.l.Info(
		fmt.Sprintf("user %s performed %s on %s", userID, action, resource),
		zap.String("event", fmt.Sprintf("authz_admin:%s,%s,%s", userID, action, resource)),
	)
}
