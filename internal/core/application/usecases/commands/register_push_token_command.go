package commands

import (
	"context"
	"errors"
	"strings"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrRegisterPushTokenCommandIsNotConstructed = errors.New(
	"RegisterPushTokenCommand must be created via NewRegisterPushTokenCommand constructor",
)

// RegisterPushTokenCommand attaches a device token to a user.
type RegisterPushTokenCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	token  string

	guard guard.ConstructorGuard
}

func NewRegisterPushTokenCommand(userID kernel.UUID, token string) (RegisterPushTokenCommand, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return RegisterPushTokenCommand{}, errors.Join(userID.Validate(), errs.NewValueIsRequiredError("token"))
	}
	if err := userID.Validate(); err != nil {
		return RegisterPushTokenCommand{}, err
	}

	return RegisterPushTokenCommand{
		userID: userID,
		token:  token,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPushTokenCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPushTokenCommandIsNotConstructed)
}

func (c RegisterPushTokenCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterPushTokenCommand) Token() string       { return c.token }

// RegisterPushTokenCommandHandler writes straight to the token registry.
type RegisterPushTokenCommandHandler struct {
	tokens ports.PushTokenRegistry
}

func NewRegisterPushTokenCommandHandler(tokens ports.PushTokenRegistry) RegisterPushTokenCommandHandler {
	return RegisterPushTokenCommandHandler{tokens: tokens}
}

func (h *RegisterPushTokenCommandHandler) Handle(ctx context.Context, cmd RegisterPushTokenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.tokens.Register(ctx, cmd.UserID(), cmd.Token())
}
