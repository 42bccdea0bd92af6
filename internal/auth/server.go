package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	// CallbackPort is the fixed loopback port registered with the backend
	// as the redirect URI.
	CallbackPort = 8089

	// AuthTimeout bounds how long we wait for the user to finish the
	// browser flow before giving up.
	AuthTimeout = 5 * time.Minute
)

// callbackResult carries the outcome of the browser redirect: exactly one of
// code or err is set.
type callbackResult struct {
	code string
	err  error
}

// Authenticate runs the authorization-code flow against the sync backend. It
// serves a one-shot loopback callback, walks the user through the browser
// step, and exchanges the returned code for a token.
func Authenticate(ctx context.Context, cfg *oauth2.Config) (*AuthResult, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", callbackHandler(state, results))

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", CallbackPort))
	if err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			results <- callbackResult{err: fmt.Errorf("callback server: %w", err)}
		}
	}()
	defer shutdownServer(server)

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Println()
	fmt.Println("To link your sync account, open this URL in your browser:")
	fmt.Println()
	fmt.Printf("  %s\n", authURL)
	fmt.Println()
	fmt.Println("Waiting for authorization...")

	var code string
	select {
	case r := <-results:
		if r.err != nil {
			return nil, r.err
		}
		code = r.code
	case <-time.After(AuthTimeout):
		return nil, fmt.Errorf("authorization timed out after %v", AuthTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code for token: %w", err)
	}

	return &AuthResult{
		Token:  token,
		UserID: ExtractUserID(token),
	}, nil
}

// callbackHandler validates the redirect and hands the authorization code
// back to the waiting flow. The state check rejects redirects we did not
// initiate.
func callbackHandler(state string, results chan<- callbackResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("state") != state {
			results <- callbackResult{err: fmt.Errorf("state mismatch in callback")}
			http.Error(w, "State mismatch", http.StatusBadRequest)
			return
		}
		if errMsg := q.Get("error"); errMsg != "" {
			results <- callbackResult{err: fmt.Errorf("authorization denied: %s", errMsg)}
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}
		code := q.Get("code")
		if code == "" {
			results <- callbackResult{err: fmt.Errorf("callback carried no authorization code")}
			http.Error(w, "No authorization code", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>fitlog</title></head>
<body style="font-family: system-ui; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0;">
<div style="text-align: center;">
<h1 style="color: #2DD4BF;">Account linked</h1>
<p>You can close this window and return to the terminal.</p>
</div>
</body>
</html>`)
		results <- callbackResult{code: code}
	}
}

// generateState creates a random state string for CSRF protection
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}
