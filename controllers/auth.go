package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v7"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"fbar-server/models"
)

const usersCollection = "users"

// AuthController owns operator sign-in, sign-out, token refresh, and
// password changes against the users collection and the Redis session cache.
type AuthController struct {
	db          *mongo.Database
	cache       *redis.Client
	log         zerolog.Logger
	maxAttempts int
	lockout     time.Duration
}

// NewAuthController takes initialized data sources and the login-throttle
// settings and returns a new auth controller.
func NewAuthController(db *mongo.Database, cache *redis.Client, log zerolog.Logger, maxAttempts int, lockout time.Duration) *AuthController {
	return &AuthController{db: db, cache: cache, log: log, maxAttempts: maxAttempts, lockout: lockout}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginWithCredentials handles POST /auth/login. On valid credentials it
// mints a new access/refresh pair, registers the session in Redis, and
// returns the tokens. Failed attempts are counted per email; past the limit
// the email is throttled for the lockout window.
func (a *AuthController) LoginWithCredentials(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	if a.loginThrottled(email) {
		writeError(w, http.StatusTooManyRequests,
			"Too many failed sign-in attempts. Please try again later.")
		return
	}

	dbUser := models.User{}
	err := a.db.Collection(usersCollection).
		FindOne(r.Context(), bson.M{"_id": email}).Decode(&dbUser)
	if errors.Is(err, mongo.ErrNoDocuments) {
		a.recordFailedLogin(email)
		writeError(w, http.StatusUnauthorized, "Incorrect email or password.")
		return
	}
	if err != nil {
		a.log.Error().Err(err).Msg("user lookup failed")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(creds.Password)); err != nil {
		a.log.Info().Str("email", email).Msg("incorrect password")
		a.recordFailedLogin(email)
		writeError(w, http.StatusUnauthorized, "Incorrect email or password.")
		return
	}
	if dbUser.Disabled {
		writeError(w, http.StatusForbidden,
			"This account has been disabled. Please contact an administrator.")
		return
	}
	a.clearFailedLogins(email)

	tkMeta, err := CreateToken(dbUser.ID)
	if err != nil {
		a.log.Error().Err(err).Msg("could not create auth tokens")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	outData, err := CreateAuth(a.cache, dbUser.ID, tkMeta)
	if err != nil {
		a.log.Error().Err(err).Msg("could not cache session tokens")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}

	writeJSON(w, http.StatusOK, outData)
}

// Logout handles POST /auth/logout and invalidates the session entry behind
// the presented access token.
func (a *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := ExtractTokenMetadata(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid session token.")
		return
	}
	if err := DeleteCachedAuth(a.cache, token.AccessID); err != nil {
		a.log.Error().Err(err).Msg("could not delete session from cache")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	a.log.Info().Str("user_id", token.UserID).Msg("session removed from cache")
	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /auth/register to provision an operator account.
func (a *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	u := models.User{}
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" || u.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), 14)
	if err != nil {
		a.log.Error().Err(err).Msg("could not hash password")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	u.ID = u.Email
	u.Password = string(hash)
	u.Disabled = false
	u.Created = time.Now().UTC()

	bsonUser, err := bson.Marshal(&u)
	if err != nil {
		a.log.Error().Err(err).Msg("could not marshal user")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	result, err := a.db.Collection(usersCollection).InsertOne(r.Context(), bsonUser)
	if err != nil {
		// Most likely a duplicate key: the email already has an account.
		a.log.Warn().Err(err).Str("email", u.Email).Msg("could not insert user")
		writeError(w, http.StatusConflict, "An account with that email already exists.")
		return
	}
	a.log.Info().Interface("id", result.InsertedID).Msg("operator account created")
	w.WriteHeader(http.StatusCreated)
}

// RefreshAuth handles POST /auth/refresh:
// 1. checks the authorization header for a valid, unexpired refresh token
// 2. deletes the old refresh entry, making refresh tokens one-time use
// 3. mints and returns a new access/refresh pair
func (a *AuthController) RefreshAuth(w http.ResponseWriter, r *http.Request) {
	token, err := TokenValid(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token.")
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		writeError(w, http.StatusUnprocessableEntity, "Unreadable refresh token.")
		return
	}

	refreshID, _ := claims["refresh_id"].(string)
	userID, _ := claims["user_id"].(string)
	if refreshID == "" || userID == "" {
		writeError(w, http.StatusUnprocessableEntity, "Unreadable refresh token.")
		return
	}
	if err := DeleteCachedAuth(a.cache, refreshID); err != nil {
		a.log.Error().Err(err).Msg("could not retire refresh token")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	newMeta, err := CreateToken(userID)
	if err != nil {
		a.log.Error().Err(err).Msg("could not create replacement tokens")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	outData, err := CreateAuth(a.cache, userID, newMeta)
	if err != nil {
		a.log.Error().Err(err).Msg("could not cache replacement tokens")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	writeJSON(w, http.StatusOK, outData)
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles POST /auth/password. The current password must be
// re-verified before the new one is accepted.
func (a *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	accessDetails, err := ExtractTokenMetadata(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid session token.")
		return
	}
	userID, err := ConfirmCachedAuth(a.cache, accessDetails)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Session expired. Please sign in again.")
		return
	}

	var req passwordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "New password must be at least 6 characters long.")
		return
	}
	if req.NewPassword == req.CurrentPassword {
		writeError(w, http.StatusBadRequest, "New password must be different from current password.")
		return
	}

	dbUser := models.User{}
	err = a.db.Collection(usersCollection).
		FindOne(r.Context(), bson.M{"_id": userID}).Decode(&dbUser)
	if err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("user lookup failed for password change")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(req.CurrentPassword)); err != nil {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 14)
	if err != nil {
		a.log.Error().Err(err).Msg("could not hash new password")
		writeError(w, http.StatusInternalServerError, retryMsg)
		return
	}
	_, err = a.db.Collection(usersCollection).UpdateOne(r.Context(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": string(hash)}},
	)
	if err != nil {
		a.log.Error().Err(err).Str("user_id", userID).Msg("password update failed")
		writeError(w, http.StatusBadGateway, retryMsg)
		return
	}
	a.log.Info().Str("user_id", userID).Msg("password changed")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password successfully updated."})
}

func loginAttemptsKey(email string) string {
	return "login_attempts:" + email
}

// recordFailedLogin bumps the per-email failure counter; the first failure
// starts the lockout window.
func (a *AuthController) recordFailedLogin(email string) {
	if email == "" {
		return
	}
	n, err := a.cache.Incr(loginAttemptsKey(email)).Result()
	if err != nil {
		a.log.Warn().Err(err).Msg("could not record failed login")
		return
	}
	if n == 1 {
		a.cache.Expire(loginAttemptsKey(email), a.lockout)
	}
}

func (a *AuthController) loginThrottled(email string) bool {
	n, err := a.cache.Get(loginAttemptsKey(email)).Int64()
	if err != nil {
		// redis.Nil (no failures yet) and transient cache errors both fall
		// through to a normal credential check.
		return false
	}
	return n >= int64(a.maxAttempts)
}

func (a *AuthController) clearFailedLogins(email string) {
	if err := a.cache.Del(loginAttemptsKey(email)).Err(); err != nil {
		a.log.Warn().Err(err).Msg("could not clear login attempt counter")
	}
}
