package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/maurofranchi/gamegear/internal/domain"
	"github.com/maurofranchi/gamegear/internal/usecase"
)

const sessionCookie = "session"

// sessionPayload is the persisted shape of one shopper's session state.
type sessionPayload struct {
	Cart     []domain.CartLine  `json:"cart"`
	Wishlist []int              `json:"wishlist"`
	Filter   domain.FilterState `json:"filter"`
}

func secretKey() []byte {
	k := os.Getenv("SESSION_KEY")
	if k == "" {
		k = "dev-insecure"
	}
	return []byte(k)
}

// readSession verifies and decodes the signed session cookie. Missing,
// tampered or malformed cookies yield an empty payload, never an error.
func readSession(r *http.Request) sessionPayload {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return sessionPayload{}
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return sessionPayload{}
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, secretKey())
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return sessionPayload{}
	}
	var sp sessionPayload
	_ = json.Unmarshal(payload, &sp)
	return sp
}

func writeSession(w http.ResponseWriter, sp sessionPayload) {
	b, _ := json.Marshal(sp)
	h := hmac.New(sha256.New, secretKey())
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true})
}

func toPayload(snap usecase.Snapshot) sessionPayload {
	sp := sessionPayload{
		Cart:     snap.Cart,
		Wishlist: snap.Wishlist.IDs(),
		Filter:   snap.Filter,
	}
	if sp.Cart == nil {
		sp.Cart = []domain.CartLine{}
	}
	return sp
}

func toSnapshot(sp sessionPayload) usecase.Snapshot {
	wl := domain.WishlistState{}
	for _, id := range sp.Wishlist {
		if !wl.Contains(id) {
			wl = wl.Toggle(id)
		}
	}
	return usecase.Snapshot{
		Cart:     domain.CartState(sp.Cart),
		Wishlist: wl,
		Filter:   sp.Filter,
	}
}
