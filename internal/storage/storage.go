// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/tenant-session/internal/db"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var accessRequestColumns = []string{
	"email_key", "email", "status", "tenant_name_hint", "role",
	"requested_at", "approved_at", "approved_by", "denied_at", "denied_by",
}

type rowScanner interface {
	Scan(...interface{}) error
}

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func scanAccessRequest(row rowScanner) (*types.AccessRequest, error) {
	var (
		r          types.AccessRequest
		status     string
		approvedAt sql.NullTime
		deniedAt   sql.NullTime
	)

	err := row.Scan(
		&r.Key, &r.Email, &status, &r.TenantNameHint, &r.Role,
		&r.RequestedAt, &approvedAt, &r.ApprovedBy, &deniedAt, &r.DeniedBy,
	)
	if err != nil {
		return nil, err
	}

	r.Status = types.RequestStatus(status)
	if !r.Status.Valid() {
		return nil, malformed("access request "+r.Key, fmt.Errorf("unknown status %q", status))
	}
	if approvedAt.Valid {
		r.ApprovedAt = &approvedAt.Time
	}
	if deniedAt.Valid {
		r.DeniedAt = &deniedAt.Time
	}

	return &r, nil
}

func (s *Storage) GetAccessRequest(ctx context.Context, email string) (*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccessRequest")
	defer span.End()

	r, err := scanAccessRequest(
		s.db.Statement(ctx).
			Select(accessRequestColumns...).
			From("access_requests").
			Where(sq.Eq{"email_key": types.RequestKey(email)}).
			QueryRowContext(ctx),
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get access request: %w", err)
	}

	return r, nil
}

func (s *Storage) ListAccessRequests(ctx context.Context, status types.RequestStatus) ([]*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAccessRequests")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(accessRequestColumns...).
		From("access_requests").
		OrderBy("requested_at")

	if status != "" {
		query = query.Where(sq.Eq{"status": string(status)})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list access requests: %w", err)
	}
	defer rows.Close()

	var requests []*types.AccessRequest
	for rows.Next() {
		r, err := scanAccessRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access request: %w", err)
		}
		requests = append(requests, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// SubmitAccessRequest creates a pending request. A denied request for the same
// email is reopened in place, a pending or approved one yields ErrDuplicateKey.
func (s *Storage) SubmitAccessRequest(ctx context.Context, r *types.AccessRequest) (*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SubmitAccessRequest")
	defer span.End()

	created, err := scanAccessRequest(
		s.db.Statement(ctx).
			Insert("access_requests").
			Columns("email_key", "email", "status", "tenant_name_hint", "role", "requested_at").
			Values(
				types.RequestKey(r.Email),
				types.NormalizeEmail(r.Email),
				string(types.RequestPending),
				r.TenantNameHint,
				r.Role,
				time.Now().UTC(),
			).
			Suffix(
				"ON CONFLICT (email_key) DO UPDATE SET "+
					"status = EXCLUDED.status, tenant_name_hint = EXCLUDED.tenant_name_hint, role = EXCLUDED.role, "+
					"requested_at = EXCLUDED.requested_at, approved_at = NULL, approved_by = '', denied_at = NULL, denied_by = '' "+
					"WHERE access_requests.status = ? RETURNING "+strings.Join(accessRequestColumns, ", "),
				string(types.RequestDenied),
			).
			QueryRowContext(ctx),
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("access request for %s is still open: %w", r.Email, ErrDuplicateKey)
		}
		return nil, wrapWriteError(err, "insert access request")
	}

	return created, nil
}

// SetAccessRequestStatus moves a pending request to approved or denied. A
// request that is missing or no longer pending yields ErrNotFound.
func (s *Storage) SetAccessRequestStatus(ctx context.Context, email string, status types.RequestStatus, actorID string) (*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SetAccessRequestStatus")
	defer span.End()

	now := time.Now().UTC()
	update := s.db.Statement(ctx).
		Update("access_requests").
		Set("status", string(status))

	switch status {
	case types.RequestApproved:
		update = update.Set("approved_at", now).Set("approved_by", actorID)
	case types.RequestDenied:
		update = update.Set("denied_at", now).Set("denied_by", actorID)
	default:
		return nil, fmt.Errorf("unsupported status transition to %q", status)
	}

	r, err := scanAccessRequest(
		update.
			Where(sq.Eq{"email_key": types.RequestKey(email), "status": string(types.RequestPending)}).
			Suffix("RETURNING " + strings.Join(accessRequestColumns, ", ")).
			QueryRowContext(ctx),
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update access request: %w", err)
	}

	return r, nil
}

func (s *Storage) DeleteAccessRequest(ctx context.Context, email string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteAccessRequest")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("access_requests").
		Where(sq.Eq{"email_key": types.RequestKey(email)}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete access request: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetInvite(ctx context.Context, email string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvite")
	defer span.End()

	var i types.Invite
	err := s.db.Statement(ctx).
		Select("email", "tenant_id", "role", "created_at").
		From("invites").
		Where(sq.Eq{"email": types.NormalizeEmail(email)}).
		QueryRowContext(ctx).
		Scan(&i.Email, &i.TenantID, &i.Role, &i.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &i, nil
}

// CreateInvite stores an invite, replacing any previous invite for the email.
func (s *Storage) CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	var i types.Invite
	err := s.db.Statement(ctx).
		Insert("invites").
		Columns("email", "tenant_id", "role").
		Values(types.NormalizeEmail(invite.Email), invite.TenantID, invite.Role).
		Suffix("ON CONFLICT (email) DO UPDATE SET tenant_id = EXCLUDED.tenant_id, role = EXCLUDED.role RETURNING email, tenant_id, role, created_at").
		QueryRowContext(ctx).
		Scan(&i.Email, &i.TenantID, &i.Role, &i.CreatedAt)

	if err != nil {
		return nil, wrapWriteError(err, "insert invite")
	}

	return &i, nil
}

// DeleteInvite removes the invite of email only while it still points at
// tenantID, a newer invite to another tenant is left alone.
func (s *Storage) DeleteInvite(ctx context.Context, email, tenantID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteInvite")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("invites").
		Where(sq.Eq{"email": types.NormalizeEmail(email), "tenant_id": tenantID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetTenant(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenant")
	defer span.End()

	var (
		t           types.Tenant
		status      string
		trialEndsAt sql.NullTime
	)

	err := s.db.Statement(ctx).
		Select("id", "name", "admin_email", "subscription_status", "trial_ends_at", "created_at").
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.AdminEmail, &status, &trialEndsAt, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	t.Subscription.Status = types.SubscriptionStatus(status)
	if trialEndsAt.Valid {
		t.Subscription.TrialEndsAt = &trialEndsAt.Time
	}

	if t.MemberList, err = s.listTenantMembers(ctx, id); err != nil {
		return nil, err
	}

	if t.StaffList, err = s.listTenantStaff(ctx, id); err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Storage) listTenantMembers(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := s.db.Statement(ctx).
		Select("email").
		From("tenant_members").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("email").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant members: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("failed to scan tenant member: %w", err)
		}
		emails = append(emails, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return emails, nil
}

func (s *Storage) listTenantStaff(ctx context.Context, tenantID string) ([]types.StaffMember, error) {
	rows, err := s.db.Statement(ctx).
		Select("email", "role", "permissions").
		From("tenant_staff").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("email").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant staff: %w", err)
	}
	defer rows.Close()

	var staff []types.StaffMember
	for rows.Next() {
		var (
			m     types.StaffMember
			perms []byte
		)
		if err := rows.Scan(&m.Email, &m.Role, &perms); err != nil {
			return nil, fmt.Errorf("failed to scan tenant staff: %w", err)
		}
		if len(perms) > 0 {
			if err := json.Unmarshal(perms, &m.Permissions); err != nil {
				return nil, malformed("staff permissions of tenant "+tenantID, err)
			}
		}
		staff = append(staff, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return staff, nil
}

// CreateTenant inserts the tenant together with both membership surfaces in
// a single transaction.
func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id := t.ID
	if id == "" {
		uid, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
		}
		id = uid.String()
	}

	status := t.Subscription.Status
	if status == "" {
		status = types.SubscriptionTrial
	}

	tx, stmt, err := s.db.TxStatement(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	_, err = stmt.
		Insert("tenants").
		Columns("id", "name", "admin_email", "subscription_status", "trial_ends_at").
		Values(id, t.Name, types.NormalizeEmail(t.AdminEmail), string(status), t.Subscription.TrialEndsAt).
		ExecContext(ctx)
	if err != nil {
		return nil, wrapWriteError(err, "insert tenant")
	}

	for _, email := range t.MemberList {
		_, err := stmt.
			Insert("tenant_members").
			Columns("tenant_id", "email").
			Values(id, types.NormalizeEmail(email)).
			Suffix("ON CONFLICT DO NOTHING").
			ExecContext(ctx)
		if err != nil {
			return nil, wrapWriteError(err, "insert tenant member")
		}
	}

	for _, m := range t.StaffList {
		perms, err := json.Marshal(m.Permissions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode staff permissions: %w", err)
		}

		_, err = stmt.
			Insert("tenant_staff").
			Columns("tenant_id", "email", "role", "permissions").
			Values(id, types.NormalizeEmail(m.Email), m.Role, perms).
			Suffix("ON CONFLICT DO NOTHING").
			ExecContext(ctx)
		if err != nil {
			return nil, wrapWriteError(err, "insert tenant staff")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetTenant(ctx, id)
}

// FindTenantByMembership looks the email up on the member list first and on
// the staff list second, both indexed by email. Ties are broken by tenant id
// so repeated lookups agree.
func (s *Storage) FindTenantByMembership(ctx context.Context, email string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.FindTenantByMembership")
	defer span.End()

	e := types.NormalizeEmail(email)

	for _, table := range []string{"tenant_members", "tenant_staff"} {
		var tenantID string
		err := s.db.Statement(ctx).
			Select("tenant_id").
			From(table).
			Where(sq.Eq{"email": e}).
			OrderBy("tenant_id").
			Limit(1).
			QueryRowContext(ctx).
			Scan(&tenantID)

		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}

		return s.GetTenant(ctx, tenantID)
	}

	return nil, ErrNotFound
}

func (s *Storage) GetUserProfile(ctx context.Context, identityID string) (*types.UserProfile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserProfile")
	defer span.End()

	var (
		p     types.UserProfile
		roles []byte
	)

	err := s.db.Statement(ctx).
		Select("id", "email", "active_tenant_id", "roles", "updated_at").
		From("user_profiles").
		Where(sq.Eq{"id": identityID}).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.Email, &p.ActiveTenantID, &roles, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	if len(roles) > 0 {
		if err := json.Unmarshal(roles, &p.Roles); err != nil {
			return nil, malformed("roles of profile "+identityID, err)
		}
	}

	return &p, nil
}

// UpsertUserProfile creates the profile or merges the non nil patch fields
// into it.
func (s *Storage) UpsertUserProfile(ctx context.Context, identityID string, patch types.ProfilePatch) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertUserProfile")
	defer span.End()

	columns := []string{"id", "updated_at"}
	values := []interface{}{identityID, time.Now().UTC()}
	updates := []string{"updated_at = EXCLUDED.updated_at"}

	if patch.Email != nil {
		columns = append(columns, "email")
		values = append(values, types.NormalizeEmail(*patch.Email))
		updates = append(updates, "email = EXCLUDED.email")
	}

	if patch.ActiveTenantID != nil {
		columns = append(columns, "active_tenant_id")
		values = append(values, *patch.ActiveTenantID)
		updates = append(updates, "active_tenant_id = EXCLUDED.active_tenant_id")
	}

	if patch.Roles != nil {
		roles, err := json.Marshal(patch.Roles)
		if err != nil {
			return fmt.Errorf("failed to encode roles: %w", err)
		}
		columns = append(columns, "roles")
		values = append(values, roles)
		updates = append(updates, "roles = EXCLUDED.roles")
	}

	_, err := s.db.Statement(ctx).
		Insert("user_profiles").
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ")).
		ExecContext(ctx)

	if err != nil {
		return wrapWriteError(err, "upsert user profile")
	}

	return nil
}

// CreateMembership is a no-op when the membership already exists, whatever
// its role.
func (s *Storage) CreateMembership(ctx context.Context, identityID, tenantID, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMembership")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("memberships").
		Columns("identity_id", "tenant_id", "role", "status").
		Values(identityID, tenantID, role, types.MembershipActive).
		Suffix("ON CONFLICT (identity_id, tenant_id) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return wrapWriteError(err, "insert membership")
	}

	return nil
}

func (s *Storage) GetMembership(ctx context.Context, identityID, tenantID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select("identity_id", "tenant_id", "role", "status", "joined_at").
		From("memberships").
		Where(sq.Eq{"identity_id": identityID, "tenant_id": tenantID}).
		QueryRowContext(ctx).
		Scan(&m.IdentityID, &m.TenantID, &m.Role, &m.Status, &m.JoinedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}

func (s *Storage) ListMemberships(ctx context.Context, identityID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMemberships")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("identity_id", "tenant_id", "role", "status", "joined_at").
		From("memberships").
		Where(sq.Eq{"identity_id": identityID}).
		OrderBy("joined_at", "tenant_id").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*types.Membership
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.IdentityID, &m.TenantID, &m.Role, &m.Status, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}
