package session

import "errors"

// Причины отказа. Текст ошибки уходит клиенту как есть.
var (
	ErrMatchNotFound      = errors.New("match-not-found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnauthorizedActor  = errors.New("unauthorized-actor")
	ErrUnknownActor       = errors.New("unknown-actor")
	ErrNotYourTurn        = errors.New("not-your-turn")
	ErrCombatFinished     = errors.New("combat-finished")
	ErrInvalidPayload     = errors.New("Invalid payload")
	ErrUnsupportedMessage = errors.New("Unsupported message")
)

var wireErrors = []error{
	ErrMatchNotFound,
	ErrUnauthorized,
	ErrUnauthorizedActor,
	ErrUnknownActor,
	ErrNotYourTurn,
	ErrCombatFinished,
	ErrInvalidPayload,
	ErrUnsupportedMessage,
}

// Reason - строка для клиента. Внутренние ошибки не раскрываются.
func Reason(err error) string {
	for _, known := range wireErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return ErrInvalidPayload.Error()
}
