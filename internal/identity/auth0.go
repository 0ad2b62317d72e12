package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"compass-backend/internal/domain"
)

const DefaultConnection = "Username-Password-Authentication"

type Auth0Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Audience     string
	Timeout      time.Duration
}

// Auth0 is a Client backed by the Auth0 management API.
type Auth0 struct {
	baseURL string
	cc      *clientcredentials.Config
	tokenHC *http.Client
	http    *http.Client
	log     *zap.Logger
}

func NewAuth0(o Auth0Options, l *zap.Logger) *Auth0 {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	base := strings.TrimRight(o.BaseURL, "/")
	cc := &clientcredentials.Config{
		ClientID:       o.ClientID,
		ClientSecret:   o.ClientSecret,
		TokenURL:       base + "/oauth/token",
		EndpointParams: url.Values{"audience": {o.Audience}},
		AuthStyle:      oauth2.AuthStyleInParams,
	}
	tokenHC := &http.Client{Timeout: o.Timeout}
	hc := cc.Client(context.WithValue(context.Background(), oauth2.HTTPClient, tokenHC))
	hc.Timeout = o.Timeout
	return &Auth0{baseURL: base, cc: cc, tokenHC: tokenHC, http: hc, log: l}
}

// auth0User is the wire shape of /api/v2/users entries.
type auth0User struct {
	UserID     string `json:"user_id,omitempty"`
	Email      string `json:"email,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Blocked    *bool  `json:"blocked,omitempty"`
	Password   string `json:"password,omitempty"`
	Connection string `json:"connection,omitempty"`
}

func (u auth0User) profile() domain.Profile {
	p := domain.Profile{UserID: u.UserID, Email: u.Email, GivenName: u.GivenName, FamilyName: u.FamilyName}
	if u.Blocked != nil {
		p.Blocked = *u.Blocked
	}
	return p
}

func (a *Auth0) FetchProfile(ctx context.Context, id string) (*domain.Profile, error) {
	var u auth0User
	if err := a.do(ctx, http.MethodGet, "/api/v2/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	if u.UserID == "" {
		u.UserID = id
	}
	p := u.profile()
	return &p, nil
}

func (a *Auth0) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	var users []auth0User
	if err := a.do(ctx, http.MethodGet, "/api/v2/users", nil, &users); err != nil {
		return nil, err
	}
	out := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.profile())
	}
	return out, nil
}

func (a *Auth0) CreateProfile(ctx context.Context, in NewProfile) (*domain.Profile, error) {
	conn := in.Connection
	if conn == "" {
		conn = DefaultConnection
	}
	body := auth0User{
		Email:      in.Email,
		GivenName:  in.GivenName,
		FamilyName: in.FamilyName,
		Password:   in.Password,
		Connection: conn,
	}
	var u auth0User
	if err := a.do(ctx, http.MethodPost, "/api/v2/users", body, &u); err != nil {
		return nil, err
	}
	p := u.profile()
	return &p, nil
}

func (a *Auth0) PatchProfile(ctx context.Context, id string, in ProfilePatch) (*domain.Profile, error) {
	body := auth0User{Email: in.Email, GivenName: in.GivenName, FamilyName: in.FamilyName, Blocked: in.Blocked}
	var u auth0User
	if err := a.do(ctx, http.MethodPatch, "/api/v2/users/"+url.PathEscape(id), body, &u); err != nil {
		return nil, err
	}
	if u.UserID == "" {
		u.UserID = id
	}
	p := u.profile()
	return &p, nil
}

// Ping requests a fresh management token.
func (a *Auth0) Ping(ctx context.Context) error {
	if _, err := a.cc.Token(context.WithValue(ctx, oauth2.HTTPClient, a.tokenHC)); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (a *Auth0) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := a.http.Do(req)
	if err != nil {
		a.log.Warn("identity request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return domain.ErrUserNotFound
	case res.StatusCode == http.StatusConflict:
		return fmt.Errorf("identity provider: user already exists: %w", domain.ErrConflict)
	case res.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, res.StatusCode)
	case res.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("identity provider rejected request (%d): %s: %w",
			res.StatusCode, strings.TrimSpace(string(msg)), domain.ErrInvalidInput)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}
