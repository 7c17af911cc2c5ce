package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/phalabot/internal/captcha"
	"github.com/KirkDiggler/phalabot/internal/common/clock"
	"github.com/KirkDiggler/phalabot/internal/common/uuid"
	"github.com/KirkDiggler/phalabot/internal/events"
	"github.com/KirkDiggler/phalabot/internal/gateway"
	"github.com/KirkDiggler/phalabot/internal/models"
	sessionRepo "github.com/KirkDiggler/phalabot/internal/repositories/verification_session"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	roleName      string
	timeout       time.Duration
	gateway       gateway.Gateway
	generator     captcha.Generator
	clock         clock.Clock
	uuidGenerator uuid.Generator
	sessionRepo   sessionRepo.Repository
	publisher     events.Publisher
	logger        *zap.Logger
}

// New creates a new verification service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Gateway == nil {
		return nil, ErrNilGateway
	}

	if cfg.Generator == nil {
		return nil, ErrNilGenerator
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.ChallengeTimeout < 0 {
		return nil, ErrInvalidTimeout
	}

	roleName := cfg.VerifiedRoleName
	if roleName == "" {
		roleName = DefaultRoleName
	}

	timeout := cfg.ChallengeTimeout
	if timeout == 0 {
		timeout = DefaultChallengeTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		roleName:      roleName,
		timeout:       timeout,
		gateway:       cfg.Gateway,
		generator:     cfg.Generator,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		sessionRepo:   cfg.SessionRepo,
		publisher:     cfg.Publisher,
		logger:        logger.Named("verification"),
	}, nil
}

// Verify runs one challenge/response session
func (s *service) Verify(ctx context.Context, input *VerifyInput) (*VerifyOutput, error) {
	if input == nil || input.UserID == "" || input.ChannelID == "" {
		return nil, ErrInvalidInput
	}

	verified, err := s.HasRole(ctx, &HasRoleInput{
		UserID:   input.UserID,
		RoleName: s.roleName,
	})
	if err != nil {
		return nil, err
	}

	if verified.HasRole {
		if err := s.send(ctx, input.ChannelID, MessageAlreadyVerified); err != nil {
			return nil, err
		}

		s.publish(ctx, &models.VerificationSession{
			UserID:    input.UserID,
			ChannelID: input.ChannelID,
			State:     models.VerificationStateAlreadyVerified,
		})

		return &VerifyOutput{
			State: models.VerificationStateAlreadyVerified,
		}, nil
	}

	now := s.clock.Now()
	session := &models.VerificationSession{
		ID:        s.uuidGenerator.NewID(),
		UserID:    input.UserID,
		ChannelID: input.ChannelID,
		Challenge: s.generator.Generate(),
		State:     models.VerificationStateChallengeSent,
		IssuedAt:  now,
		Deadline:  now.Add(s.timeout),
	}

	logger := s.logger.With(
		zap.String("session_id", session.ID),
		zap.String("user_id", session.UserID),
		zap.String("channel_id", session.ChannelID),
	)

	s.track(ctx, logger, session)
	defer s.untrack(logger, session)

	if err := s.send(ctx, session.ChannelID, challengeMessage(session.Challenge)); err != nil {
		return nil, err
	}
	logger.Debug("challenge sent", zap.Time("deadline", session.Deadline))

	response, err := s.gateway.AwaitNextMessage(ctx, &gateway.AwaitNextMessageInput{
		Match:   gateway.FromAuthorInChannel(session.UserID, session.ChannelID),
		Timeout: s.timeout,
	})

	switch {
	case errors.Is(err, gateway.ErrWaitTimeout):
		session.State = models.VerificationStateTimedOut
		if err := s.send(ctx, session.ChannelID, MessageTimedOut); err != nil {
			return nil, err
		}

	case err != nil:
		return nil, fmt.Errorf("failed to wait for response: %w", err)

	case captcha.Verify(session.Challenge, response.Content):
		role, err := s.findRole(ctx, s.roleName)
		if err != nil {
			return nil, err
		}

		if err := s.gateway.GrantRole(ctx, &gateway.GrantRoleInput{
			UserID: session.UserID,
			RoleID: role.ID,
		}); err != nil {
			return nil, err
		}

		session.State = models.VerificationStateMatched
		if err := s.send(ctx, session.ChannelID, grantedMessage(role.Name)); err != nil {
			return nil, err
		}

	default:
		session.State = models.VerificationStateMismatched
		if err := s.send(ctx, session.ChannelID, MessageIncorrect); err != nil {
			return nil, err
		}
	}

	logger.Info("verification resolved", zap.String("state", string(session.State)))
	s.publish(ctx, session)

	return &VerifyOutput{
		SessionID: session.ID,
		State:     session.State,
	}, nil
}

// EnsureRole scans every guild role before deciding to create one
func (s *service) EnsureRole(ctx context.Context, input *EnsureRoleInput) (*EnsureRoleOutput, error) {
	if input == nil || input.Name == "" {
		return nil, ErrEmptyRoleName
	}

	role, err := s.findRole(ctx, input.Name)
	if err == nil {
		s.logger.Debug("role exists", zap.String("role", role.Name), zap.String("role_id", role.ID))
		return &EnsureRoleOutput{Role: role}, nil
	}
	if !errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}

	created, err := s.gateway.CreateRole(ctx, &gateway.CreateRoleInput{
		Name: input.Name,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created role", zap.String("role", created.Name), zap.String("role_id", created.ID))

	return &EnsureRoleOutput{
		Role:    created,
		Created: true,
	}, nil
}

// HasRole reports whether the member holds a role with the given name
func (s *service) HasRole(ctx context.Context, input *HasRoleInput) (*HasRoleOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, ErrInvalidInput
	}
	if input.RoleName == "" {
		return nil, ErrEmptyRoleName
	}

	roles, err := s.gateway.MemberRoles(ctx, &gateway.MemberRolesInput{
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	for _, role := range roles {
		if role.Name == input.RoleName {
			return &HasRoleOutput{HasRole: true}, nil
		}
	}

	return &HasRoleOutput{HasRole: false}, nil
}

func (s *service) findRole(ctx context.Context, name string) (*models.Role, error) {
	roles, err := s.gateway.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	for _, role := range roles {
		if role.Name == name {
			return role, nil
		}
	}

	return nil, ErrRoleNotFound
}

func (s *service) send(ctx context.Context, channelID, content string) error {
	return s.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: channelID,
		Content:   content,
	})
}

// track records the session for diagnostics. Failures never abort the session.
func (s *service) track(ctx context.Context, logger *zap.Logger, session *models.VerificationSession) {
	if s.sessionRepo == nil {
		return
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
		TTL:     s.timeout,
	}); err != nil {
		logger.Warn("failed to record session", zap.Error(err))
	}
}

func (s *service) untrack(logger *zap.Logger, session *models.VerificationSession) {
	if s.sessionRepo == nil {
		return
	}

	// The invocation context may already be cancelled here
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		SessionID: session.ID,
	}); err != nil {
		logger.Warn("failed to remove session", zap.Error(err))
	}
}

func (s *service) publish(ctx context.Context, session *models.VerificationSession) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishVerification(ctx, &events.VerificationEvent{
		SessionID: session.ID,
		UserID:    session.UserID,
		ChannelID: session.ChannelID,
		State:     session.State,
		At:        s.clock.Now(),
	}); err != nil {
		s.logger.Warn("failed to publish verification event",
			zap.String("user_id", session.UserID),
			zap.Error(err))
	}
}
