// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "faceauth/internal/delivery/context"
	"faceauth/internal/domain/entity"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/domain/repository"
	"faceauth/internal/domain/service"
	"faceauth/internal/infra/face"
	"faceauth/internal/usecase"
	"faceauth/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const eventPublishTimeout = 5 * time.Second

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	recognizer     service.FaceRecognizer
	eventPublisher service.EventPublisher
	logger         *slog.Logger
	now            func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Recognizer     service.FaceRecognizer
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:       params.UserRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		recognizer:     params.Recognizer,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
		now:            time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a user unless the email is already taken.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.WithStack(err)
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	user := &entity.User{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           email,
		PasswordHash:    hash,
		FaceDescriptors: input.FaceDescriptors,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", util.MaskEmail(email)),
		slog.Bool("face_enrolled", user.HasFaceDescriptors()),
	)
	srv.publish(ctx, service.EventUserRegistered, user.ID, email, "")

	return &usecase.RegisterOutput{User: user}, nil
}

// Login authenticates by face when a probe is supplied for an enrolled user
// without a password, and by password otherwise.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidEmail
		}

		return nil, errors.Wrap(err, "failed to look up email")
	}

	method := usecase.LoginMethodPassword
	if input.FaceDescriptor != "" && input.Password == "" && user.HasFaceDescriptors() {
		method = usecase.LoginMethodFace
		if err := srv.matchFace(ctx, user, input.FaceDescriptor); err != nil {
			return nil, err
		}
	} else if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Password mismatch", slog.String("user_id", user.ID.String()))

		return nil, domainerrors.ErrIncorrectPassword
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("User logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("method", method),
		slog.String("token_ttl", util.FormatTTL(srv.tokenService.TokenDuration())),
	)
	srv.publish(ctx, service.EventUserLoggedIn, user.ID, user.Email, method)

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresIn: srv.tokenService.TokenDuration(),
		Method:    method,
		User:      user,
	}, nil
}

func (srv *authService) matchFace(ctx context.Context, user *entity.User, payload string) error {
	image, err := face.DecodePayload(payload)
	if err != nil {
		return err
	}

	probes, err := srv.recognizer.Detect(ctx, image)
	if err != nil {
		return errors.WithStack(err)
	}

	matched := srv.recognizer.MatchedLabels(probes, user.FaceDescriptors)
	if len(matched) == 0 {
		srv.log(ctx).Info("Face mismatch",
			slog.String("user_id", user.ID.String()),
			slog.Int("faces_detected", len(probes)),
		)

		return domainerrors.ErrFaceMismatch
	}

	return nil
}

// Check extracts the descriptors of the face in the payload, labeled with the email.
func (srv *authService) Check(ctx context.Context, input *usecase.CheckInput) (*usecase.CheckOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	image, err := face.DecodePayload(input.FaceDescriptor)
	if err != nil {
		return nil, err
	}

	labeled, err := srv.recognizer.LabelDescriptors(ctx, []string{email}, []string{image})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(labeled) == 0 || len(labeled[0].Descriptors) == 0 {
		return nil, domainerrors.ErrRetakePhoto
	}

	srv.publish(ctx, service.EventFaceChecked, uuid.Nil, email, "")

	return &usecase.CheckOutput{Descriptors: labeled}, nil
}

// Profile returns the stored user named by the token claims.
func (srv *authService) Profile(ctx context.Context, claims *service.Claims) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken.WrapMessage("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}
	if user.ID != claims.UserID {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token subject does not match stored user")
	}

	return user, nil
}

// publish emits an account event. Failures are logged and never surface to the caller.
func (srv *authService) publish(ctx context.Context, eventType string, userID uuid.UUID, email, method string) {
	event := &service.AccountEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Email:      email,
		RemoteIP:   deliverycontext.GetRemoteIPFromContext(ctx),
		Method:     method,
		OccurredAt: srv.now().UTC(),
	}
	if userID != uuid.Nil {
		event.UserID = userID.String()
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()

	if err := srv.eventPublisher.PublishAccountEvent(publishCtx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("event_type", eventType),
			slog.Any("error", err),
		)
	}
}
