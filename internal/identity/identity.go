// Package identity is the boundary to the identity collaborator: sign-in,
// registration, password reset, sign-out, and a stream of auth-state change
// events. The default implementation lives in postgres.go; everything else
// in the application depends only on Provider.
package identity

import (
	"context"
	"sync"

	"facultyjobs/internal/models"
)

// Identity is the authenticated principal. Nil means signed out.
type Identity struct {
	UID          string
	Email        string
	DisplayName  string
	SessionToken string
}

type RegisterParams struct {
	Email       string
	Password    string
	DisplayName string
	Role        models.Role
	OrgName     string
}

type Provider interface {
	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Identity, error)

	// Register creates the identity and triggers creation of its matching
	// profile record.
	Register(ctx context.Context, p RegisterParams) (*Identity, error)

	// SendPasswordReset issues a reset token for the email. Delivery is the
	// collaborator's concern.
	SendPasswordReset(ctx context.Context, email string) error

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// Subscribe registers fn to receive auth-state changes: the new identity
	// on sign-in or registration, nil on sign-out. The returned func cancels
	// the subscription.
	Subscribe(fn func(*Identity)) (cancel func())
}

// hub fans auth-state events out to subscribers.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Identity)
}

func newHub() *hub {
	return &hub{subs: make(map[int]func(*Identity))}
}

func (h *hub) subscribe(fn func(*Identity)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *hub) notify(ident *Identity) {
	h.mu.Lock()
	fns := make([]func(*Identity), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ident)
	}
}
