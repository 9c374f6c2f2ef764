package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"member-auth/internal/model"
	"member-auth/internal/token"
	"member-auth/pkg/apierror"
)

// MemberStore is the keyed record store the orchestrator runs against.
// Implemented by repository.MemberRepository and repository.MemoryMemberStore.
type MemberStore interface {
	FindByID(ctx context.Context, id int64) (model.Member, error)
	FindByEmail(ctx context.Context, email string) (model.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, m model.Member) (model.Member, error)
	UpdateRefreshToken(ctx context.Context, id int64, refreshToken string) error
	ClearRefreshToken(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// LoginResult carries the freshly issued token pair. The refresh token
// string is also the fingerprint stored on the member record.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// AuthService owns the session state machine: a member is either in
// NoSession (empty refresh slot) or ActiveSession (slot holds the exact
// string of the one currently valid refresh token).
type AuthService struct {
	members MemberStore
	codec   *token.Codec
}

func NewAuthService(members MemberStore, codec *token.Codec) *AuthService {
	return &AuthService{members: members, codec: codec}
}

// Signup registers a new GENERAL member with no active session. The
// existence pre-check keeps the common case cheap; the store's unique
// constraint is the arbiter when two signups race.
func (s *AuthService) Signup(ctx context.Context, name string, email string, password string) error {
	email = strings.TrimSpace(email)

	exists, err := s.members.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if exists {
		return apierror.BadRequest("The email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("signup: hash password: %w", err)
	}

	_, err = s.members.Create(ctx, model.Member{
		Role:         model.RoleGeneral,
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, model.ErrEmailTaken) {
		return apierror.BadRequest("The email is already registered")
	}
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

// Login verifies credentials and transitions the member to
// ActiveSession, overwriting any stored refresh token. A second login
// silently logs out the first session.
func (s *AuthService) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	member, err := s.members.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrMemberNotFound) {
		return LoginResult{}, apierror.LoginFailed()
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, apierror.LoginFailed()
	}

	accessToken, err := s.codec.IssueAccess(token.AccessClaims{
		ID:   member.ID,
		Role: member.Role,
		Name: member.Name,
	})
	if err != nil {
		return LoginResult{}, apierror.Unauthorized()
	}

	refreshToken, err := s.codec.IssueRefresh(token.RefreshClaims{ID: member.ID})
	if err != nil {
		return LoginResult{}, apierror.Unauthorized()
	}

	if err := s.members.UpdateRefreshToken(ctx, member.ID, refreshToken); err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}

	return LoginResult{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout clears the member's refresh slot. It trusts any structurally
// valid, unexpired refresh token bound to the id without comparing it
// against the stored fingerprint, so a superseded token can still
// force a logout.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.codec.ParseRefresh(refreshToken)
	if err != nil {
		return apierror.Unauthorized()
	}

	member, err := s.findByID(ctx, claims.ID)
	if err != nil {
		return err
	}

	if err := s.members.ClearRefreshToken(ctx, member.ID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Reissue exchanges a refresh token for a fresh access token. The
// presented token must equal the stored fingerprint byte for byte; a
// token superseded by a newer login fails here even though it still
// verifies and has not expired. The refresh token itself is not rotated.
func (s *AuthService) Reissue(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.codec.ParseRefresh(refreshToken)
	if err != nil {
		return "", apierror.Unauthorized()
	}

	member, err := s.findByID(ctx, claims.ID)
	if err != nil {
		return "", err
	}

	if subtle.ConstantTimeCompare([]byte(member.RefreshToken), []byte(refreshToken)) != 1 {
		return "", apierror.Unauthorized()
	}

	accessToken, err := s.codec.IssueAccess(token.AccessClaims{
		ID:   member.ID,
		Role: member.Role,
		Name: member.Name,
	})
	if err != nil {
		return "", apierror.Unauthorized()
	}
	return accessToken, nil
}

// MemberByID resolves a member for the authentication gate and the
// profile endpoint.
func (s *AuthService) MemberByID(ctx context.Context, id int64) (model.Member, error) {
	return s.findByID(ctx, id)
}

// SeedMember creates an initial member when the store is empty. Used at
// startup when seed credentials are configured.
func (s *AuthService) SeedMember(ctx context.Context, name string, email string, password string) error {
	count, err := s.members.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed member: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.Signup(ctx, name, email, password)
}

func (s *AuthService) findByID(ctx context.Context, id int64) (model.Member, error) {
	member, err := s.members.FindByID(ctx, id)
	if errors.Is(err, model.ErrMemberNotFound) {
		return model.Member{}, apierror.NotFound("No member matches the presented credential")
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}
