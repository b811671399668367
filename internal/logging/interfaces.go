// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Error(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Debug(args ...interface{})
	Fatal(args ...interface{})
	Errorf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Debugf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Sync() error
	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface emits security relevant events in a stable format
// so they can be picked up by log based alerting.
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	AuthnLoginSuccess(userID string)
	AuthnLoginFail(userID string)
	AuthnLogout(userID string)
	AuthzFailure(userID, resource string)
	AdminAction(userID, action, resource string)
}
