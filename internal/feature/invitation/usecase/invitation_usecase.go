// Package usecase implements the invitation lifecycle: pending rows move
// to accepted or cancelled through guarded store updates, and expiry is
// observed at read time rather than swept into the row.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"workspace_backend/internal/feature/invitation/domain/entity"
	wsentity "workspace_backend/internal/feature/workspace/domain/entity"
	wsusecase "workspace_backend/internal/feature/workspace/usecase"
	"workspace_backend/internal/platform/mail"
	"workspace_backend/internal/platform/token"
)

// InvitationRepository abstracts the persistence layer for invitations.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InvitationRepository interface {
	// Create persists a new invitation row.
	Create(ctx context.Context, inv *entity.Invitation) error

	// FindByID retrieves an invitation by ID. Returns ErrNotFound when absent.
	FindByID(ctx context.Context, id uint) (*entity.Invitation, error)

	// FindByToken retrieves the unique holder of a token value. Returns
	// ErrNotFound when no row holds it.
	FindByToken(ctx context.Context, tokenValue string) (*entity.Invitation, error)

	// ListPending returns the stored-pending invitations of a company,
	// newest first. Expiry observation is left to the caller.
	ListPending(ctx context.Context, companyID uint) ([]entity.Invitation, error)

	// MarkAccepted flips pending to accepted, guarded on the row still
	// being pending and unexpired at the given instant. Reports false when
	// the guard did not match, i.e. somebody else won or the row ran out.
	MarkAccepted(ctx context.Context, id uint, at time.Time) (bool, error)

	// MarkCancelled flips pending to cancelled under the same guard.
	MarkCancelled(ctx context.Context, id uint, at time.Time) (bool, error)

	// ReplaceToken re-mints the token pair of a stored-pending row.
	// Reports false when the row is no longer pending.
	ReplaceToken(ctx context.Context, id uint, tokenValue string, expiresAt time.Time) (bool, error)

	// DeleteExpiredBefore removes pending rows whose expiry lies before
	// the cutoff, returning how many were removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// WorkspaceGate answers capability questions for a company. Satisfied by
// the workspace usecase.
type WorkspaceGate interface {
	CanInviteUsers(ctx context.Context, userID, companyID uint) (bool, error)
	GetWorkspace(ctx context.Context, userID, companyID uint) (*wsentity.Company, error)
}

// MembershipBinder creates the membership edge acceptance grants.
type MembershipBinder interface {
	Add(ctx context.Context, m *wsentity.Membership) error
}

// UserDirectory resolves invited emails to accounts so Accept can tell a
// login prompt from a registration prompt.
type UserDirectory interface {
	IDByEmail(ctx context.Context, email string) (uint, bool, error)
}

// TokenIssuer mints opaque single-use tokens with per-kind TTLs.
type TokenIssuer interface {
	Issue(kind token.Kind) (string, time.Time, error)
}

// AcceptOutcome classifies what Accept wants the caller to do next.
type AcceptOutcome string

const (
	// AcceptAccepted means the membership now exists.
	AcceptAccepted AcceptOutcome = "accepted"

	// AcceptRequiresAuth means an account for the invited email exists but
	// no matching principal was presented.
	AcceptRequiresAuth AcceptOutcome = "requires_auth"

	// AcceptRequiresRegistration means no account exists for the invited
	// email yet.
	AcceptRequiresRegistration AcceptOutcome = "requires_registration"
)

// AcceptResult is the successful result of Accept.
type AcceptResult struct {
	Outcome   AcceptOutcome
	CompanyID uint
}

// InvitationUsecase orchestrates invitation creation, acceptance,
// cancellation, resending and reaping.
type InvitationUsecase struct {
	invitations InvitationRepository
	gate        WorkspaceGate
	memberships MembershipBinder
	users       UserDirectory
	tokens      TokenIssuer
	mailer      mail.Dispatcher
	now         func() time.Time
}

// Option configures an InvitationUsecase.
type Option func(*InvitationUsecase)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(u *InvitationUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// NewInvitationUsecase creates a new InvitationUsecase.
func NewInvitationUsecase(invitations InvitationRepository, gate WorkspaceGate, memberships MembershipBinder,
	users UserDirectory, tokens TokenIssuer, mailer mail.Dispatcher, opts ...Option) *InvitationUsecase {
	u := &InvitationUsecase{
		invitations: invitations,
		gate:        gate,
		memberships: memberships,
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a pending invitation and dispatches the notification.
// The row is durable even when dispatch fails; the second return value
// reports whether the email went out, so the caller can offer a resend
// instead of silently stranding a token the recipient never saw.
func (u *InvitationUsecase) Create(ctx context.Context, inviterID, companyID uint, email string) (*entity.Invitation, bool, error) {
	ok, err := u.gate.CanInviteUsers(ctx, inviterID, companyID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrForbidden
	}

	value, expiresAt, err := u.tokens.Issue(token.KindInvitation)
	if err != nil {
		return nil, false, fmt.Errorf("failed to issue invitation token: %w", err)
	}

	inv := &entity.Invitation{
		Email:     normalizeEmail(email),
		CompanyID: companyID,
		InviterID: inviterID,
		Role:      wsentity.RoleMember,
		Status:    entity.StatusPending,
		Token:     &value,
		ExpiresAt: expiresAt,
	}
	if err := u.invitations.Create(ctx, inv); err != nil {
		return nil, false, err
	}

	delivered := u.dispatch(ctx, inviterID, inv, value)
	slog.Info("invitation created", "invitation_id", inv.ID, "company_id", companyID, "delivered", delivered)
	return inv, delivered, nil
}

// dispatch sends the invitation email and reports whether it went out.
func (u *InvitationUsecase) dispatch(ctx context.Context, inviterID uint, inv *entity.Invitation, tokenValue string) bool {
	workspaceName := ""
	if company, err := u.gate.GetWorkspace(ctx, inviterID, inv.CompanyID); err == nil {
		workspaceName = company.Name
	}
	err := u.mailer.Send(ctx, mail.Message{
		Kind:          mail.KindInvitation,
		Recipient:     inv.Email,
		Token:         tokenValue,
		WorkspaceName: workspaceName,
	})
	if err != nil {
		slog.Warn("invitation dispatch failed", "error", err, "invitation_id", inv.ID)
		return false
	}
	return true
}

// Accept resolves an invitation token for a possibly-absent principal.
//
// Without a principal, or with one bound to a different account than the
// invited email, it reports what the caller must do next instead of
// mutating anything. With the matching principal it flips the row to
// accepted through a guarded update, so of any number of concurrent
// acceptances exactly one wins, and creates the membership edge. A repeat
// call by the user who already accepted returns Accepted again rather
// than an error.
func (u *InvitationUsecase) Accept(ctx context.Context, tokenValue string, principalID *uint) (*AcceptResult, error) {
	if tokenValue == "" {
		return nil, ErrInvitationInvalid
	}
	inv, err := u.invitations.FindByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvitationInvalid
		}
		return nil, err
	}

	userID, exists, err := u.users.IDByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	boundToPrincipal := exists && principalID != nil && *principalID == userID

	switch inv.Status {
	case entity.StatusAccepted:
		if boundToPrincipal {
			return &AcceptResult{Outcome: AcceptAccepted, CompanyID: inv.CompanyID}, nil
		}
		return nil, ErrAlreadyAccepted
	case entity.StatusCancelled:
		return nil, ErrAlreadyCancelled
	}

	now := u.now()
	if inv.IsExpired(now) {
		return nil, ErrInvitationExpired
	}

	if principalID == nil || !boundToPrincipal {
		if exists {
			return &AcceptResult{Outcome: AcceptRequiresAuth, CompanyID: inv.CompanyID}, nil
		}
		return &AcceptResult{Outcome: AcceptRequiresRegistration, CompanyID: inv.CompanyID}, nil
	}

	ok, err := u.invitations.MarkAccepted(ctx, inv.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race or expired between read and update.
		return nil, u.terminalError(ctx, inv.ID)
	}

	membership := &wsentity.Membership{
		UserID:    userID,
		CompanyID: inv.CompanyID,
		Role:      inv.Role,
	}
	if err := u.memberships.Add(ctx, membership); err != nil && !errors.Is(err, wsusecase.ErrAlreadyMember) {
		return nil, fmt.Errorf("failed to add membership: %w", err)
	}

	slog.Info("invitation accepted", "invitation_id", inv.ID, "company_id", inv.CompanyID, "user_id", userID)
	return &AcceptResult{Outcome: AcceptAccepted, CompanyID: inv.CompanyID}, nil
}

// Cancel terminates a pending invitation. Accepted, cancelled and
// observed-expired rows all refuse with their respective terminal error;
// cancelling an expired invitation is not treated as a failure worth a
// retry, just reported.
func (u *InvitationUsecase) Cancel(ctx context.Context, requestingUserID, companyID, invitationID uint) error {
	inv, err := u.authorizedInvitation(ctx, requestingUserID, companyID, invitationID)
	if err != nil {
		return err
	}

	now := u.now()
	if err := u.terminalState(inv, now); err != nil {
		return err
	}

	ok, err := u.invitations.MarkCancelled(ctx, invitationID, now)
	if err != nil {
		return err
	}
	if !ok {
		return u.terminalError(ctx, invitationID)
	}
	slog.Info("invitation cancelled", "invitation_id", invitationID, "company_id", companyID, "user_id", requestingUserID)
	return nil
}

// Resend re-mints the token and expiry of a stored-pending invitation and
// dispatches a fresh email. The old token stops resolving.
func (u *InvitationUsecase) Resend(ctx context.Context, requestingUserID, companyID, invitationID uint) (*entity.Invitation, bool, error) {
	inv, err := u.authorizedInvitation(ctx, requestingUserID, companyID, invitationID)
	if err != nil {
		return nil, false, err
	}
	if inv.IsTerminal() {
		return nil, false, u.statusError(inv.Status)
	}

	value, expiresAt, err := u.tokens.Issue(token.KindInvitation)
	if err != nil {
		return nil, false, fmt.Errorf("failed to issue invitation token: %w", err)
	}

	ok, err := u.invitations.ReplaceToken(ctx, invitationID, value, expiresAt)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, u.terminalError(ctx, invitationID)
	}

	inv.Token = &value
	inv.ExpiresAt = expiresAt
	delivered := u.dispatch(ctx, requestingUserID, inv, value)
	slog.Info("invitation resent", "invitation_id", invitationID, "delivered", delivered)
	return inv, delivered, nil
}

// ListPending returns the company's stored-pending invitations for an
// authorized manager. Rows past expiry are included; their effective
// status is applied at the transport layer.
func (u *InvitationUsecase) ListPending(ctx context.Context, requestingUserID, companyID uint) ([]entity.Invitation, error) {
	ok, err := u.gate.CanInviteUsers(ctx, requestingUserID, companyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return u.invitations.ListPending(ctx, companyID)
}

// ReapExpired deletes pending rows whose expiry lies more than the
// retention window in the past. Read-time semantics are unaffected: rows
// inside the window still read as expired, they just keep existing.
func (u *InvitationUsecase) ReapExpired(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := u.now().Add(-retention)
	deleted, err := u.invitations.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		slog.Info("expired invitations reaped", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// authorizedInvitation loads an invitation and checks that the requester
// may manage invitations in its company. The company scoping doubles as
// the not-found check so IDs cannot be probed across tenants.
func (u *InvitationUsecase) authorizedInvitation(ctx context.Context, requestingUserID, companyID, invitationID uint) (*entity.Invitation, error) {
	ok, err := u.gate.CanInviteUsers(ctx, requestingUserID, companyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	inv, err := u.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.CompanyID != companyID {
		return nil, ErrNotFound
	}
	return inv, nil
}

// terminalState maps an invitation's observed state to its terminal error,
// or nil while it is still actionable.
func (u *InvitationUsecase) terminalState(inv *entity.Invitation, now time.Time) error {
	if inv.IsTerminal() {
		return u.statusError(inv.Status)
	}
	if inv.IsExpired(now) {
		return ErrInvitationExpired
	}
	return nil
}

// terminalError re-reads a row after a guarded update matched nothing and
// reports why.
func (u *InvitationUsecase) terminalError(ctx context.Context, invitationID uint) error {
	inv, err := u.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if err := u.terminalState(inv, u.now()); err != nil {
		return err
	}
	// Guard mismatch with a still-pending row should not happen.
	return ErrInvitationInvalid
}

func (u *InvitationUsecase) statusError(status entity.Status) error {
	if status == entity.StatusAccepted {
		return ErrAlreadyAccepted
	}
	return ErrAlreadyCancelled
}
