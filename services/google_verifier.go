package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleClaims is the subset of the ID-token payload the signup flow needs.
type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"` // "true"/"false" per tokeninfo
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Aud           string `json:"aud"`
}

func (c *GoogleClaims) Verified() bool { return c.EmailVerified == "true" }

// GoogleVerifier validates Google ID tokens against the tokeninfo
// endpoint, which checks the signature and expiry server-side; we only
// have to pin the audience to our own client id.
type GoogleVerifier struct {
	httpClient *http.Client
	clientID   string
	endpoint   string
}

func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		clientID:   os.Getenv("GOOGLE_CLIENT_ID"),
		endpoint:   tokenInfoURL,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		v.endpoint+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected token: %s", resp.Status)
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, err
	}
	if v.clientID != "" && claims.Aud != v.clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if claims.Sub == "" || claims.Email == "" {
		return nil, fmt.Errorf("token missing subject or email")
	}
	return &claims, nil
}
