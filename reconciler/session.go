package reconciler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/models"
)

// ErrDomainRestricted means the identity's email is outside the required
// school domain; the caller must treat the session as signed out.
var ErrDomainRestricted = errors.New("email is not in the required domain")

// Session is the per-identity state after a successful sign-in.
// SetupRequired is set on the very first sign-in, when no remote settings
// document existed yet and defaults were persisted; the client opens the
// settings surface in response.
type Session struct {
	Identity      models.Identity        `json:"identity"`
	Settings      models.TeacherSettings `json:"settings"`
	SetupRequired bool                   `json:"setupRequired"`
}

func settingsPath(uid string) string {
	return "teachers/" + uid
}

// CheckDomain enforces the optional required email domain suffix. Empty
// requiredDomain disables the check.
func CheckDomain(email, requiredDomain string) error {
	if requiredDomain == "" {
		return nil
	}
	suffix := strings.ToLower(requiredDomain)
	if !strings.HasPrefix(suffix, "@") {
		suffix = "@" + suffix
	}
	if !strings.HasSuffix(strings.ToLower(email), suffix) {
		return fmt.Errorf("%s: %w", email, ErrDomainRestricted)
	}
	return nil
}

// SignIn reconciles a verified identity against the remote settings
// document. First sign-in initializes defaults and persists them; later
// sign-ins merge the remote copy over defaults.
func SignIn(ctx context.Context, store gateway.Store, identity models.Identity, requiredDomain string) (Session, error) {
	if err := CheckDomain(identity.Email, requiredDomain); err != nil {
		return Session{}, err
	}

	remote, err := store.ReadOnce(ctx, settingsPath(identity.UID))
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		settings := DefaultSettings(identity.DisplayName)
		if err := store.WriteMerge(ctx, settingsPath(identity.UID), SettingsFields(settings)); err != nil {
			return Session{}, err
		}
		return Session{Identity: identity, Settings: settings, SetupRequired: true}, nil
	case err != nil:
		return Session{}, err
	}

	return Session{
		Identity: identity,
		Settings: MergeRemote(remote, identity.DisplayName),
	}, nil
}

// Save persists the full settings object with merge semantics.
func Save(ctx context.Context, store gateway.Store, uid string, settings models.TeacherSettings) error {
	return store.WriteMerge(ctx, settingsPath(uid), SettingsFields(settings))
}

// Load fetches and merges the current remote settings for an identity.
func Load(ctx context.Context, store gateway.Store, identity models.Identity) (models.TeacherSettings, error) {
	remote, err := store.ReadOnce(ctx, settingsPath(identity.UID))
	if errors.Is(err, gateway.ErrNotFound) {
		return DefaultSettings(identity.DisplayName), nil
	}
	if err != nil {
		return models.TeacherSettings{}, err
	}
	return MergeRemote(remote, identity.DisplayName), nil
}

// Amen applies the optimistic affirmation update and merge-writes the
// changed fields. The local result is returned even when the write fails;
// the caller surfaces the failure but does not roll back.
func Amen(ctx context.Context, store gateway.Store, identity models.Identity, settings models.TeacherSettings, leaderName string) (models.TeacherSettings, error) {
	updated, fields := ApplyAmen(settings, leaderName)
	err := store.WriteMerge(ctx, settingsPath(identity.UID), fields)
	return updated, err
}
