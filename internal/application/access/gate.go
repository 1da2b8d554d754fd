package access

import (
	"strings"

	"vibemarket-backend/internal/domain"
	"vibemarket-backend/internal/pkg/constants"
)

// Identity is the caller as reported by the identity provider. A nil *Identity is anonymous.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CreatorName derives the public creator name from the contact address (its local part).
func (i *Identity) CreatorName() string {
	if i == nil || i.Email == "" {
		return "Anonymous"
	}
	name, _, _ := strings.Cut(i.Email, "@")
	if name == "" {
		return "Anonymous"
	}
	return name
}

// Gate maps an identity to a role. The admin allow-list is injected at startup;
// roles are recomputed on every call and never cached.
type Gate struct {
	admins map[string]struct{}
}

// NewGate builds a gate from the configured admin contact addresses.
func NewGate(adminEmails []string) *Gate {
	g := &Gate{admins: make(map[string]struct{}, len(adminEmails))}
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			g.admins[e] = struct{}{}
		}
	}
	return g
}

// IsAdmin reports whether the identity's contact address is on the allow-list.
func (g *Gate) IsAdmin(id *Identity) bool {
	if g == nil || id == nil || id.ID == "" {
		return false
	}
	email := normalizeEmail(id.Email)
	if email == "" {
		return false
	}
	_, ok := g.admins[email]
	return ok
}

// RoleFor resolves the caller's role with respect to a vibe (nil vibe: no ownership check).
// Admin takes precedence over owner.
func (g *Gate) RoleFor(id *Identity, v *domain.Vibe) string {
	if id == nil || id.ID == "" {
		return constants.Anonymous
	}
	if g.IsAdmin(id) {
		return constants.Admin
	}
	if v != nil && v.UserID != "" && v.UserID == id.ID {
		return constants.Owner
	}
	return constants.Anonymous
}

// CanView reports whether the caller may read the vibe: approved vibes are public,
// anything else is visible to its owner and to admins.
func (g *Gate) CanView(id *Identity, v *domain.Vibe) bool {
	if v == nil {
		return false
	}
	if v.Status == domain.StatusApproved {
		return true
	}
	role := g.RoleFor(id, v)
	return role == constants.Owner || role == constants.Admin
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
