package utils

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/tensuraworld/gachabot/gachabot/config"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// ErrorType is the embed category an error is shown under.
type ErrorType int

const (
	UserError ErrorType = iota
	SystemError
	NotFoundError
	PermissionError
	BusinessLogicError
)

func (t ErrorType) prefix() string {
	switch t {
	case UserError:
		return "⚠️"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	default:
		return "🔧"
	}
}

func (t ErrorType) color() int {
	switch t {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

// Classify maps an engine error onto an embed category and a message safe
// to show to the player. Storage and unexpected faults never leak details.
func Classify(err error) (ErrorType, string) {
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		return UserError, err.Error()
	case errors.Is(err, game.ErrSelfBattle):
		return UserError, "You cannot battle yourself."
	case errors.Is(err, game.ErrNoOpponent):
		return UserError, "Mention someone to battle."
	case errors.Is(err, game.ErrNotFound):
		return NotFoundError, "Nothing found: " + err.Error()
	case errors.Is(err, game.ErrPermissionDenied):
		return PermissionError, "You are not allowed to do that."
	case errors.Is(err, game.ErrInsufficientFunds):
		return BusinessLogicError, "Not enough coins: " + err.Error()
	case errors.Is(err, game.ErrAlreadyClaimed):
		return BusinessLogicError, "You have already claimed this quest."
	case errors.Is(err, game.ErrOpponentBusy):
		return BusinessLogicError, "Your opponent just fought. Try again in a few seconds."
	case errors.Is(err, game.ErrNoCombatPower):
		return BusinessLogicError, "Both fighters need at least one character. Try /summon first."
	case errors.Is(err, game.ErrOnCooldown):
		if remaining, ok := game.RemainingCooldown(err); ok {
			return BusinessLogicError, "On cooldown. Try again in " + FormatDuration(remaining) + "."
		}
		return BusinessLogicError, "On cooldown."
	default:
		return SystemError, "Something went wrong. Please try again later."
	}
}

// ErrorEmbed builds the embed shown for err.
func ErrorEmbed(err error) discord.Embed {
	kind, msg := Classify(err)
	return discord.Embed{
		Description: fmt.Sprintf("%s %s", kind.prefix(), msg),
		Color:       kind.color(),
	}
}

// ResponseHandler sends standard replies for commands and components.
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// HandleError replies with the mapped embed. Only system faults are passed
// back to the caller so the logging wrapper records them as failures.
func (h *ResponseHandler) HandleError(e *handler.CommandEvent, err error) error {
	kind, _ := Classify(err)
	if replyErr := e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{ErrorEmbed(err)},
		Flags:  discord.MessageFlagEphemeral,
	}); replyErr != nil {
		slog.Error("Failed to send error reply", slog.String("type", "error"), slog.Any("error", replyErr))
	}
	if kind == SystemError {
		return err
	}
	return nil
}

// HandleDeferredError is HandleError for an interaction that was deferred.
func (h *ResponseHandler) HandleDeferredError(e *handler.CommandEvent, err error) error {
	kind, _ := Classify(err)
	if _, replyErr := e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{ErrorEmbed(err)},
	}); replyErr != nil {
		slog.Error("Failed to update error reply", slog.String("type", "error"), slog.Any("error", replyErr))
	}
	if kind == SystemError {
		return err
	}
	return nil
}

func (h *ResponseHandler) HandleComponentError(e *handler.ComponentEvent, err error) error {
	kind, _ := Classify(err)
	if replyErr := e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{ErrorEmbed(err)},
		Flags:  discord.MessageFlagEphemeral,
	}); replyErr != nil {
		slog.Error("Failed to send error reply", slog.String("type", "error"), slog.Any("error", replyErr))
	}
	if kind == SystemError {
		return err
	}
	return nil
}

func (h *ResponseHandler) CreateSuccessEmbed(e *handler.CommandEvent, title, description string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       config.SuccessColor,
		}},
	})
}

func (h *ResponseHandler) CreateInfoEmbed(e *handler.CommandEvent, title, description string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       config.InfoColor,
		}},
	})
}
