package handlers

import (
	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/backend"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Account      *AccountHandler
	Conversation *ConversationHandler
	Library      *LibraryHandler
	Audio        *AudioHandler
}

// NewProvider constructs the handler provider around the backend service.
func NewProvider(service *backend.Service, log zerolog.Logger) *Provider {
	registerFieldNames()
	return &Provider{
		Account:      NewAccountHandler(service),
		Conversation: NewConversationHandler(service),
		Library:      NewLibraryHandler(service),
		Audio:        NewAudioHandler(service, log),
	}
}
