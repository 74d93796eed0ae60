package telemetry

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// UnknownUser is the sentinel identity used when no identity can be
// resolved. Records are still reported under it.
const UnknownUser = "unknown"

// IdentityResolver resolves the local user identity for telemetry records.
type IdentityResolver interface {
	// UserID never fails; unresolvable identities come back as UnknownUser.
	UserID(ctx context.Context) string
}

// FileIdentity resolves identity from the persisted user key map written by
// the auth flow.
type FileIdentity struct {
	// DataDir is the persistent data directory; the key map lives at
	// auth/userKeyMap.json beneath it.
	DataDir string
}

// keyMapEntry mirrors one entry of userKeyMap.json.
type keyMapEntry struct {
	User struct {
		AccountAddress string `json:"accountAddress"`
	} `json:"user"`
}

// UserID returns the account address of the first key map entry, or
// UnknownUser when the map is empty, unreadable, or malformed. Keys are
// visited in sorted order so the choice is deterministic.
func (f *FileIdentity) UserID(ctx context.Context) string {
	path := filepath.Join(f.DataDir, "auth", "userKeyMap.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return UnknownUser
	}

	var keyMap map[string]keyMapEntry
	if err := json.Unmarshal(data, &keyMap); err != nil {
		return UnknownUser
	}

	keys := make([]string, 0, len(keyMap))
	for k := range keyMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if addr := keyMap[k].User.AccountAddress; addr != "" {
			return addr
		}
	}
	return UnknownUser
}
