package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"droppoint-partner-api/internal/config"
	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/logger"
	mainmodel "droppoint-partner-api/internal/model/main"
)

// Login gating outcomes, in the order they are checked.
var (
	ErrAuthFailed   = errors.New("authentication failed")
	ErrNotOnboarded = errors.New("no partner account for this identity")
	ErrNotApproved  = errors.New("partner account pending approval")
	ErrDisabled     = errors.New("partner account disabled")
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// localSessions backs sessions when redis is absent (dev without redis,
// tests). One process only; production runs on redis.
var localSessions sync.Map // map[string]sessionEntry

type sessionEntry struct {
	partnerID uint64
	expiresAt time.Time
}

type AuthService struct {
	db    *gorm.DB
	oauth *oauth2.Config
}

func NewAuthService() *AuthService {
	return NewAuthServiceWithDB(dal.MainDB)
}

func NewAuthServiceWithDB(db *gorm.DB) *AuthService {
	return &AuthService{
		db: db,
		oauth: &oauth2.Config{
			ClientID:     config.C.Google.ClientID,
			ClientSecret: config.C.Google.ClientSecret,
			RedirectURL:  config.C.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// LoginWithApiKey authenticates a partner by issued api key and opens a
// session. The gate order is fixed: unknown key, then approval, then active.
func (s *AuthService) LoginWithApiKey(apiKey string) (*mainmodel.Partner, string, error) {
	if apiKey == "" {
		return nil, "", ErrAuthFailed
	}
	partner, err := dao.NewPartnerDaoWithDB(s.db).GetByApiKey(apiKey)
	if err != nil {
		return nil, "", err
	}
	if err := gatePartner(partner); err != nil {
		return nil, "", err
	}
	token, err := s.openSession(partner.PartnerID)
	if err != nil {
		return nil, "", err
	}
	return partner, token, nil
}

// GoogleAuthURL returns the consent redirect for the given CSRF state.
func (s *AuthService) GoogleAuthURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginWithGoogle exchanges the OAuth code, resolves the Google identity to
// a partner (by bound google id first, then by email, binding on first use)
// and opens a session. A Google account with no partner behind it is
// ErrNotOnboarded, not an account creation path.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*mainmodel.Partner, string, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Portal.Warnf("google code exchange failed: %v", err)
		return nil, "", ErrAuthFailed
	}
	resp, err := s.oauth.Client(ctx, tok).Get(googleUserInfoURL)
	if err != nil {
		return nil, "", ErrAuthFailed
	}
	defer resp.Body.Close()
	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil || gu.ID == "" {
		return nil, "", ErrAuthFailed
	}

	pd := dao.NewPartnerDaoWithDB(s.db)
	partner, err := pd.GetByGoogleID(gu.ID)
	if err != nil {
		return nil, "", err
	}
	if partner == nil && gu.Email != "" {
		partner, err = pd.GetByEmail(gu.Email)
		if err != nil {
			return nil, "", err
		}
		if partner != nil {
			if err := pd.BindGoogleID(partner.PartnerID, gu.ID); err != nil {
				return nil, "", err
			}
		}
	}
	if err := gatePartner(partner); err != nil {
		return nil, "", err
	}
	token, err := s.openSession(partner.PartnerID)
	if err != nil {
		return nil, "", err
	}
	return partner, token, nil
}

// ResolveSession maps a session token back to a partner id.
func (s *AuthService) ResolveSession(token string) (uint64, error) {
	return ResolveSession(token)
}

func (s *AuthService) Logout(token string) {
	if dal.RedisClient != nil {
		dal.RedisClient.Del(dal.RedisCtx, sessionKey(token))
		return
	}
	localSessions.Delete(token)
}

func gatePartner(p *mainmodel.Partner) error {
	if p == nil {
		return ErrNotOnboarded
	}
	if !p.IsApproved {
		return ErrNotApproved
	}
	if !p.IsActive {
		return ErrDisabled
	}
	return nil
}

func (s *AuthService) openSession(partnerID uint64) (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)
	ttl := time.Duration(config.C.Security.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	if dal.RedisClient != nil {
		err := dal.RedisClient.Set(dal.RedisCtx, sessionKey(token), partnerID, ttl).Err()
		if err != nil {
			return "", fmt.Errorf("session store failed: %w", err)
		}
		return token, nil
	}
	localSessions.Store(token, sessionEntry{partnerID: partnerID, expiresAt: time.Now().Add(ttl)})
	return token, nil
}

// ResolveSession is package level so middleware can use it without holding
// an AuthService.
func ResolveSession(token string) (uint64, error) {
	if token == "" {
		return 0, ErrAuthFailed
	}
	if dal.RedisClient != nil {
		id, err := dal.RedisClient.Get(dal.RedisCtx, sessionKey(token)).Uint64()
		if err != nil {
			return 0, ErrAuthFailed
		}
		return id, nil
	}
	v, ok := localSessions.Load(token)
	if !ok {
		return 0, ErrAuthFailed
	}
	entry := v.(sessionEntry)
	if time.Now().After(entry.expiresAt) {
		localSessions.Delete(token)
		return 0, ErrAuthFailed
	}
	return entry.partnerID, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
