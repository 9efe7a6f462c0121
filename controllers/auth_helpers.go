package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v7"
	uuid "github.com/satori/go.uuid"

	"fbar-server/models"
)

// CreateToken returns a fully formed AuthToken holding the metadata for both
// the access and refresh tokens of a given user id.
func CreateToken(id string) (*models.AuthToken, error) {
	meta := &models.AuthToken{}
	meta.AccessExpires = time.Now().Add(time.Minute * 30).Unix()
	meta.RefreshExpires = time.Now().Add(time.Hour * 24 * 30).Unix()
	meta.AccessID = uuid.NewV4().String()
	meta.RefreshID = uuid.NewV4().String()

	accessTkClaims := jwt.MapClaims{}
	accessTkClaims["authorized"] = true
	accessTkClaims["access_id"] = meta.AccessID
	accessTkClaims["user_id"] = id
	accessTkClaims["exp"] = meta.AccessExpires
	accessTk := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTkClaims)
	atkSigned, err := accessTk.SignedString([]byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}
	meta.AccessToken = atkSigned

	refreshTkClaims := jwt.MapClaims{}
	refreshTkClaims["refresh_id"] = meta.RefreshID
	refreshTkClaims["user_id"] = id
	refreshTkClaims["exp"] = meta.RefreshExpires
	refreshTk := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshTkClaims)
	rtkSigned, err := refreshTk.SignedString([]byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return nil, err
	}
	meta.RefreshToken = rtkSigned

	return meta, nil
}

// CreateAuth registers both tokens of an AuthToken in the Redis session cache
// with matching expiries and returns the OutboundToken to send back to the
// operator.
func CreateAuth(cache *redis.Client, userid string, meta *models.AuthToken) (*models.OutboundToken, error) {
	expAccess := time.Unix(meta.AccessExpires, 0)
	expRefresh := time.Unix(meta.RefreshExpires, 0)
	now := time.Now()

	if err := cache.Set(meta.AccessID, userid, expAccess.Sub(now)).Err(); err != nil {
		return &models.OutboundToken{}, err
	}
	if err := cache.Set(meta.RefreshID, userid, expRefresh.Sub(now)).Err(); err != nil {
		return &models.OutboundToken{}, err
	}

	return &models.OutboundToken{
		AccessToken:  meta.AccessToken,
		RefreshToken: meta.RefreshToken,
	}, nil
}

// ConfirmCachedAuth looks up a token's AccessID in the session cache. A
// returned user id means the session is live and the token is still valid.
func ConfirmCachedAuth(cache *redis.Client, details *models.AccessDetails) (string, error) {
	return cache.Get(details.AccessID).Result()
}

// DeleteCachedAuth removes the session entry for the provided token id.
func DeleteCachedAuth(cache *redis.Client, tokenID string) error {
	_, err := cache.Del(tokenID).Result()
	return err
}

// ExtractTokenMetadata verifies the request's bearer token and organizes its
// claims into an AccessDetails for the session-cache lookup.
func ExtractTokenMetadata(r *http.Request) (*models.AccessDetails, error) {
	token, err := VerifyToken(r)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return &models.AccessDetails{
			AccessID: claims["access_id"].(string),
			UserID:   claims["user_id"].(string),
		}, nil
	}
	return nil, fmt.Errorf("could not read claims from the bearer token")
}

// TokenValid returns the parsed token when it is verified and unexpired.
func TokenValid(r *http.Request) (*jwt.Token, error) {
	token, err := VerifyToken(r)
	if err != nil {
		return nil, err
	}
	if _, ok := token.Claims.(jwt.Claims); !ok && token.Valid {
		return nil, err
	}
	return token, nil
}

// VerifyToken parses the request's bearer token and checks its signature
// against the secret matching the route; the refresh route is signed with
// the refresh secret, everything else with the access secret.
func VerifyToken(r *http.Request) (*jwt.Token, error) {
	jwtString := ExtractToken(r)
	jwtToken, err := jwt.Parse(jwtString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretFor(r.URL.Path)), nil
	})
	if err != nil {
		return nil, err
	}
	return jwtToken, nil
}

func secretFor(path string) string {
	if path == "/auth/refresh" {
		return os.Getenv("REFRESH_SECRET")
	}
	return os.Getenv("ACCESS_SECRET")
}

// ExtractToken pulls the bearer token out of the Authorization header.
func ExtractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if xs := strings.Split(header, " "); len(xs) == 2 {
		return xs[1]
	}
	return ""
}
